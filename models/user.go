package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name;size:100" json:"firstName"`
	LastName  string    `gorm:"column:last_name;size:100" json:"lastName"`
	Email     string    `gorm:"uniqueIndex;size:150" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Roles     string    `gorm:"size:255" json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name the way activity descriptions show it.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
