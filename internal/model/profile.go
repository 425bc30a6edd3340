package model

// Profile is the optional one-to-one extension of a user. Image holds the
// object-storage key; an empty string means no image has been uploaded.
// The row itself survives image deletion.
type Profile struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex" json:"user"`
	Image  string `gorm:"size:255" json:"image"`
}
