package models

import (
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingActive, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FlatID uint  `gorm:"column:flat_id;not null;index" json:"flatId"`
	UserID *uint `gorm:"column:user_id;index" json:"userId"`

	UserEmail string         `gorm:"column:user_email;size:150;index" json:"userEmail"`
	StartDate datatypes.Date `gorm:"column:start_date;not null" json:"startDate"`
	EndDate   datatypes.Date `gorm:"column:end_date;not null" json:"endDate"`
	Status    BookingStatus  `gorm:"column:status;size:20;not null;index" json:"status"`
	System    string         `gorm:"column:system;size:100;not null" json:"system"`

	// set once on creation, never updated
	CreatedAt datatypes.Date `gorm:"column:created_at;not null;index" json:"createdAt"`

	Flat *Flat `gorm:"foreignKey:FlatID;references:ID" json:"-"`
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Booking) TableName() string {
	return "booking"
}
