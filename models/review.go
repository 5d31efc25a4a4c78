package models

import "time"

type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	BookID     string    `gorm:"index;size:36;not null" json:"bookId"`
	ReviewedBy string    `gorm:"default:'Anonymous Guest'" json:"reviewedBy"`
	ReviewedAt time.Time `json:"reviewedAt"`
	Rating     int       `gorm:"not null" json:"rating"` // 1 to 5
	Review     string    `gorm:"type:text" json:"review"`
	IsDeleted  bool      `gorm:"default:false" json:"isDeleted"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
