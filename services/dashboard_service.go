package services

import (
	"fmt"

	"flatly-backend/models"

	"gorm.io/gorm"
)

const recentActivityLimit = 10

// DashboardService answers read-only aggregate queries.
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

func (s *DashboardService) Stats() (models.DashboardStats, error) {
	var stats models.DashboardStats
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalFlats, s.DB.Model(&models.Flat{})},
		{&stats.TotalUsers, s.DB.Model(&models.User{})},
		{&stats.TotalBookings, s.DB.Model(&models.Booking{})},
		{&stats.ActiveBookings, s.DB.Model(&models.Booking{}).Where("status = ?", models.BookingActive)},
		{&stats.CancelledBookings, s.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCancelled)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return models.DashboardStats{}, fmt.Errorf("failed to count dashboard stats: %w", err)
		}
	}
	return stats, nil
}

// RecentActivities describes the most recently created bookings, newest first.
func (s *DashboardService) RecentActivities() ([]models.ActivityDTO, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("User").
		Preload("Flat").
		Order("created_at DESC").
		Order("id DESC").
		Limit(recentActivityLimit).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent bookings: %w", err)
	}

	out := make([]models.ActivityDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, models.ActivityDTO{
			Description: describeBooking(b),
			Timestamp:   models.FormatDate(b.CreatedAt),
		})
	}
	return out, nil
}

func describeBooking(b models.Booking) string {
	userName := "Unknown User"
	if b.User != nil {
		userName = b.User.FullName()
	}
	flatName := "Unknown Flat"
	if b.Flat != nil {
		flatName = "Flat: " + b.Flat.Name
	}
	return "User " + userName + " booked " + flatName
}

// MostActiveUser returns the user with the most bookings. Equal counts go to
// the lowest user id. found is false when no booking is linked to a user.
func (s *DashboardService) MostActiveUser() (models.MostActiveUserDTO, bool, error) {
	var row struct {
		UserID       uint
		FirstName    string
		LastName     string
		BookingCount int64
	}
	result := s.DB.
		Table("booking b").
		Select("u.id AS user_id, u.first_name AS first_name, u.last_name AS last_name, COUNT(b.id) AS booking_count").
		Joins("JOIN users u ON b.user_id = u.id").
		Group("u.id, u.first_name, u.last_name").
		Order("booking_count DESC").
		Order("u.id ASC").
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return models.MostActiveUserDTO{}, false, fmt.Errorf("failed to find most active user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.MostActiveUserDTO{}, false, nil
	}
	return models.MostActiveUserDTO{
		UserID:   row.UserID,
		Name:     models.User{FirstName: row.FirstName, LastName: row.LastName}.FullName(),
		Bookings: row.BookingCount,
	}, true, nil
}
