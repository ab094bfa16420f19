package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dress struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string           `gorm:"type:varchar(200);not null" json:"name"`
	Description string           `gorm:"type:varchar(1000)" json:"description"`
	Price       decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"price"`
	SalePrice   *decimal.Decimal `gorm:"type:numeric(18,2)" json:"sale_price"`
	SKU         string           `gorm:"type:varchar(50);not null;uniqueIndex" json:"sku"`
	Stock       int              `gorm:"not null;default:0" json:"stock"`
	Designer    string           `gorm:"type:varchar(50)" json:"designer"`
	Style       string           `gorm:"type:varchar(50)" json:"style"`
	Silhouette  string           `gorm:"type:varchar(50)" json:"silhouette"`
	Neckline    string           `gorm:"type:varchar(50)" json:"neckline"`
	SleeveStyle string           `gorm:"type:varchar(50)" json:"sleeve_style"`
	Color       string           `gorm:"type:varchar(100)" json:"color"`
	Fabric      string           `gorm:"type:varchar(100)" json:"fabric"`
	TrainStyle  string           `gorm:"type:varchar(50)" json:"train_style"`
	IsAvailable bool             `gorm:"not null;default:true" json:"is_available"`
	IsFeatured  bool             `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt   time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`

	CategoryID int64    `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category"`

	//ドレス削除で画像・サイズも消える（CASCADE）
	Images []DressImage `gorm:"foreignKey:DressID;constraint:OnDelete:CASCADE" json:"images"`
	Sizes  []DressSize  `gorm:"foreignKey:DressID;constraint:OnDelete:CASCADE" json:"sizes"`
}
