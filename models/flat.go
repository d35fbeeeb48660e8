package models

import (
	"gorm.io/datatypes"
)

// Flat is a rentable listing. Images are only changed through the image
// attach/detach operations of the flat service.
type Flat struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Name         string                      `gorm:"size:255;not null" json:"name"`
	Location     string                      `gorm:"size:255;not null" json:"location"`
	Price        float64                     `gorm:"not null" json:"price"`
	Description  string                      `gorm:"type:text" json:"description"`
	Distance     *float64                    `gorm:"column:distance" json:"distance"`
	Amenities    datatypes.JSONSlice[string] `gorm:"column:amenities" json:"amenities"`
	Availability string                      `gorm:"size:100" json:"availability"`
	Images       datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	RoomNumber   int                         `gorm:"column:room_number;not null" json:"roomNumber"`

	Bookings []Booking `gorm:"foreignKey:FlatID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Flat) TableName() string {
	return "flat"
}
