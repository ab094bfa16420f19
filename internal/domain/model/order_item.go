package model

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	DressID             int64           `gorm:"not null;index" json:"dress_id"`
	Quantity            int             `gorm:"not null" json:"quantity"`
	UnitPrice           decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unit_price"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_price"`
	Size                string          `gorm:"type:varchar(10)" json:"size"`
	SpecialInstructions string          `gorm:"type:varchar(1000)" json:"special_instructions"`

	//明細から参照されるドレスは削除できない（RESTRICT）
	Dress Dress `gorm:"foreignKey:DressID;constraint:OnDelete:RESTRICT" json:"dress"`
}
