package model

type DressSize struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	DressID     int64  `gorm:"not null;index" json:"dress_id"`
	Size        string `gorm:"type:varchar(10);not null" json:"size"`
	Stock       int    `gorm:"not null;default:0" json:"stock"`
	IsAvailable bool   `gorm:"not null;default:true" json:"is_available"`
}
