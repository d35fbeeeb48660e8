package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type FlatDTO struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	Price        float64  `json:"price" binding:"gte=0"`
	Description  string   `json:"description"`
	Distance     *float64 `json:"distance" binding:"omitempty,gte=0"`
	Amenities    []string `json:"amenities"`
	Availability string   `json:"availability"`
	Images       []string `json:"images"`
	RoomNumber   int      `json:"roomNumber" binding:"required,gt=0"`
}

type BookingDTO struct {
	ID        uint          `json:"id"`
	FlatID    uint          `json:"flatId" binding:"required"`
	UserID    *uint         `json:"userId"`
	UserEmail string        `json:"userEmail"`
	StartDate string        `json:"startDate" binding:"required"`
	EndDate   string        `json:"endDate" binding:"required"`
	Status    BookingStatus `json:"status"`
	System    string        `json:"system"`
	CreatedAt string        `json:"createdAt,omitempty"`
}

// BookingUpdateDTO carries the mutable booking fields.
type BookingUpdateDTO struct {
	UserEmail string        `json:"userEmail"`
	StartDate string        `json:"startDate" binding:"required"`
	EndDate   string        `json:"endDate" binding:"required"`
	Status    BookingStatus `json:"status" binding:"required"`
	System    string        `json:"system"`
}

type UserDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password,omitempty"`
	Roles     string `json:"roles"`
}

type ActiveFlatDTO struct {
	BookingID uint    `json:"booking_id"`
	Flat      FlatDTO `json:"flat"`
}

type DashboardStats struct {
	TotalFlats        int64 `json:"totalFlats"`
	TotalUsers        int64 `json:"totalUsers"`
	TotalBookings     int64 `json:"totalBookings"`
	ActiveBookings    int64 `json:"activeBookings"`
	CancelledBookings int64 `json:"cancelledBookings"`
}

type ActivityDTO struct {
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type MostActiveUserDTO struct {
	UserID   uint   `json:"userId"`
	Name     string `json:"name"`
	Bookings int64  `json:"bookings"`
}

func ToFlatDTO(f Flat) FlatDTO {
	amenities := []string(f.Amenities)
	if amenities == nil {
		amenities = []string{}
	}
	images := []string(f.Images)
	if images == nil {
		images = []string{}
	}
	return FlatDTO{
		ID:           f.ID,
		Name:         f.Name,
		Location:     f.Location,
		Price:        f.Price,
		Description:  f.Description,
		Distance:     f.Distance,
		Amenities:    amenities,
		Availability: f.Availability,
		Images:       images,
		RoomNumber:   f.RoomNumber,
	}
}

func ToBookingDTO(b Booking) BookingDTO {
	return BookingDTO{
		ID:        b.ID,
		FlatID:    b.FlatID,
		UserID:    b.UserID,
		UserEmail: b.UserEmail,
		StartDate: FormatDate(b.StartDate),
		EndDate:   FormatDate(b.EndDate),
		Status:    b.Status,
		System:    b.System,
		CreatedAt: FormatDate(b.CreatedAt),
	}
}

func ToUserDTO(u User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Roles:     u.Roles,
	}
}

func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date at UTC midnight.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// Today is the current calendar date.
func Today() datatypes.Date {
	now := time.Now().UTC()
	return datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}
