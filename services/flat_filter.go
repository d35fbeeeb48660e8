package services

import (
	"strings"

	"gorm.io/gorm"
)

// FlatFilter holds the optional flat search criteria. A nil field imposes no
// constraint; every supplied criterion must hold (AND only).
type FlatFilter struct {
	Location    *string
	MinPrice    *float64
	MaxPrice    *float64
	RoomNumber  *int
	MinDistance *float64
	MaxDistance *float64
}

func (f FlatFilter) location() string {
	if f.Location == nil {
		return ""
	}
	return strings.TrimSpace(*f.Location)
}

// IsEmpty reports whether no criterion was supplied.
func (f FlatFilter) IsEmpty() bool {
	return f.location() == "" &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.RoomNumber == nil &&
		f.MinDistance == nil && f.MaxDistance == nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Apply adds one WHERE clause per supplied criterion to q.
func (f FlatFilter) Apply(q *gorm.DB) *gorm.DB {
	if loc := f.location(); loc != "" {
		q = q.Where("LOWER(location) LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(strings.ToLower(loc))+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.RoomNumber != nil {
		q = q.Where("room_number = ?", *f.RoomNumber)
	}
	// NULL distances never satisfy a distance bound
	if f.MinDistance != nil {
		q = q.Where("distance >= ?", *f.MinDistance)
	}
	if f.MaxDistance != nil {
		q = q.Where("distance <= ?", *f.MaxDistance)
	}
	return q
}
