package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"flatly-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns the booking lifecycle: ACTIVE on creation, CANCELLED
// through Cancel, anything else through a plain Update.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

func (s *BookingService) find(id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		return models.Booking{}, fmt.Errorf("failed to find booking %d: %w", id, err)
	}
	return booking, nil
}

func (s *BookingService) List() ([]models.BookingDTO, error) {
	var bookings []models.Booking
	if err := s.DB.Order("id").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

func (s *BookingService) GetByID(id uint) (models.BookingDTO, error) {
	booking, err := s.find(id)
	if err != nil {
		return models.BookingDTO{}, err
	}
	return models.ToBookingDTO(booking), nil
}

// Create resolves the flat (and the user, when given) before writing
// anything; a missing reference aborts the whole operation.
func (s *BookingService) Create(dto models.BookingDTO) (models.BookingDTO, error) {
	log.Printf("➡️ BookingService.Create flat_id=%d user_email=%s", dto.FlatID, dto.UserEmail)

	start, end, err := parseRange(dto.StartDate, dto.EndDate)
	if err != nil {
		return models.BookingDTO{}, err
	}
	status := dto.Status
	if status == "" {
		status = models.BookingActive
	}
	if !status.Valid() {
		return models.BookingDTO{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	createdAt := models.Today()
	if raw := strings.TrimSpace(dto.CreatedAt); raw != "" {
		if createdAt, err = models.ParseDate(raw); err != nil {
			return models.BookingDTO{}, fmt.Errorf("%w: createdAt %q", ErrInvalidDate, dto.CreatedAt)
		}
	}

	var flat models.Flat
	if err := s.DB.Select("id").First(&flat, dto.FlatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BookingDTO{}, fmt.Errorf("%w: id=%d", ErrFlatNotFound, dto.FlatID)
		}
		return models.BookingDTO{}, fmt.Errorf("failed to find flat %d: %w", dto.FlatID, err)
	}

	if dto.UserID != nil {
		var user models.User
		if err := s.DB.Select("id").First(&user, *dto.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.BookingDTO{}, fmt.Errorf("%w: id=%d", ErrUserNotFound, *dto.UserID)
			}
			return models.BookingDTO{}, fmt.Errorf("failed to find user %d: %w", *dto.UserID, err)
		}
	}

	booking := models.Booking{
		FlatID:    flat.ID,
		UserID:    dto.UserID,
		UserEmail: strings.TrimSpace(dto.UserEmail),
		StartDate: start,
		EndDate:   end,
		Status:    status,
		System:    dto.System,
		CreatedAt: createdAt,
	}
	if err := s.DB.Omit(clause.Associations).Create(&booking).Error; err != nil {
		log.Printf("❌ BookingService.Create error: %v", err)
		return models.BookingDTO{}, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Printf("⬅️ BookingService.Create ok: booking_id=%d", booking.ID)
	return models.ToBookingDTO(booking), nil
}

// Update overwrites userEmail, dates, status and system. The flat/user
// linkage and createdAt never change.
func (s *BookingService) Update(id uint, dto models.BookingUpdateDTO) (models.BookingDTO, error) {
	booking, err := s.find(id)
	if err != nil {
		return models.BookingDTO{}, err
	}
	start, end, err := parseRange(dto.StartDate, dto.EndDate)
	if err != nil {
		return models.BookingDTO{}, err
	}
	if !dto.Status.Valid() {
		return models.BookingDTO{}, fmt.Errorf("%w: %q", ErrInvalidStatus, dto.Status)
	}

	booking.UserEmail = strings.TrimSpace(dto.UserEmail)
	booking.StartDate = start
	booking.EndDate = end
	booking.Status = dto.Status
	booking.System = dto.System

	err = s.DB.Model(&booking).
		Select("user_email", "start_date", "end_date", "status", "system").
		Updates(&booking).Error
	if err != nil {
		return models.BookingDTO{}, fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	return models.ToBookingDTO(booking), nil
}

// Cancel sets the status to CANCELLED whatever it was before.
func (s *BookingService) Cancel(id uint) error {
	booking, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.DB.Model(&booking).Update("status", models.BookingCancelled).Error; err != nil {
		return fmt.Errorf("failed to cancel booking %d: %w", id, err)
	}
	log.Printf("⬅️ BookingService.Cancel ok: booking_id=%d previous_status=%s", id, booking.Status)
	return nil
}

func (s *BookingService) Delete(id uint) error {
	result := s.DB.Delete(&models.Booking{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
	}
	return nil
}

func (s *BookingService) ActiveByUserEmail(email string) ([]models.BookingDTO, error) {
	var bookings []models.Booking
	err := s.DB.
		Where("user_email = ? AND status = ?", strings.TrimSpace(email), models.BookingActive).
		Order("id").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

// ActiveFlatsByUserEmail pairs each active booking of email with its flat.
func (s *BookingService) ActiveFlatsByUserEmail(email string) ([]models.ActiveFlatDTO, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Flat").
		Where("user_email = ? AND status = ?", strings.TrimSpace(email), models.BookingActive).
		Order("id").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active booking flats: %w", err)
	}

	out := make([]models.ActiveFlatDTO, 0, len(bookings))
	for _, b := range bookings {
		if b.Flat == nil {
			return nil, fmt.Errorf("%w: id=%d", ErrFlatNotFound, b.FlatID)
		}
		out = append(out, models.ActiveFlatDTO{BookingID: b.ID, Flat: models.ToFlatDTO(*b.Flat)})
	}
	return out, nil
}

func parseRange(startRaw, endRaw string) (datatypes.Date, datatypes.Date, error) {
	start, err := models.ParseDate(strings.TrimSpace(startRaw))
	if err != nil {
		return datatypes.Date{}, datatypes.Date{}, fmt.Errorf("%w: startDate %q", ErrInvalidDate, startRaw)
	}
	end, err := models.ParseDate(strings.TrimSpace(endRaw))
	if err != nil {
		return datatypes.Date{}, datatypes.Date{}, fmt.Errorf("%w: endDate %q", ErrInvalidDate, endRaw)
	}
	if time.Time(start).After(time.Time(end)) {
		return datatypes.Date{}, datatypes.Date{}, fmt.Errorf("%w: %s > %s", ErrInvalidDateRange, startRaw, endRaw)
	}
	return start, end, nil
}

func toBookingDTOs(bookings []models.Booking) []models.BookingDTO {
	out := make([]models.BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, models.ToBookingDTO(b))
	}
	return out
}
