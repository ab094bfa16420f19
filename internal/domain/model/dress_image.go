package model

import "time"

type DressImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DressID   int64     `gorm:"not null;index" json:"dress_id"`
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"`
	AltText   string    `gorm:"type:varchar(200)" json:"alt_text"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
