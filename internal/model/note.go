package model

import "time"

// Note categories. Stored uppercase, matching what the front-end sends.
const (
	CategoryBusiness  = "BUSINESS"
	CategoryPersonal  = "PERSONAL"
	CategoryImportant = "IMPORTANT"
)

// ValidCategory reports whether c is one of the three known categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryBusiness, CategoryPersonal, CategoryImportant:
		return true
	}
	return false
}

// Note belongs to exactly one user. Slug is assigned once at creation and
// never recomputed; the unique index is the real uniqueness guarantee.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Slug      string    `gorm:"size:220;not null;uniqueIndex" json:"slug"`
	Category  string    `gorm:"size:20;not null;default:PERSONAL" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
