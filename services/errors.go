package services

import "errors"

var (
	ErrFlatNotFound    = errors.New("flat not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrImageNotFound   = errors.New("image url not found for flat")

	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
)

// IsNotFound reports whether err refers to a missing flat, booking, user or image.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFlatNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrImageNotFound)
}

// IsValidation reports whether err was caused by bad caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidDate)
}
