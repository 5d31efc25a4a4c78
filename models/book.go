package models

import "time"

type Book struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"uniqueIndex;not null" json:"title"`
	Excerpt     string     `gorm:"not null" json:"excerpt"`
	UserID      string     `gorm:"index;size:36;not null" json:"userId"`
	ISBN        string     `gorm:"column:isbn;uniqueIndex;not null" json:"ISBN"`
	Category    string     `gorm:"not null" json:"category"`
	Subcategory string     `gorm:"not null" json:"subcategory"`
	ReleasedAt  string     `gorm:"size:10;not null" json:"releasedAt"` // YYYY-MM-DD
	// Denormalized count of non-deleted reviews. Maintained by
	// increment/decrement on review create/delete, not recomputed.
	Reviews   int        `gorm:"default:0" json:"reviews"`
	CoverURL  string     `json:"coverUrl"`
	IsDeleted bool       `gorm:"default:false" json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
