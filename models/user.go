package models

import "time"

// Address is an optional embedded group on User. All fields may be empty.
type Address struct {
	Street  string `gorm:"size:200" json:"street,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	Pincode string `gorm:"size:20" json:"pincode,omitempty"`
}

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:10;not null" json:"title"` // Mr, Mrs or Miss
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"uniqueIndex;size:10;not null" json:"phone"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Address   Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
