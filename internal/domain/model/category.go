package model

import "time"

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	ImageURL    string    `gorm:"type:varchar(200)" json:"image_url"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	//ドレスから参照されているカテゴリはハード削除できない（RESTRICT）
	Dresses []Dress `gorm:"foreignKey:CategoryID" json:"dresses,omitempty"`
}
