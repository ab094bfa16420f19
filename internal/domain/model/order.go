package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ステータスは自由記述ラベル。初期値だけ決めておく。
const (
	OrderStatusPending   = "Pending"
	PaymentStatusPending = "Pending"
)

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber     string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"order_number"`
	CustomerName    string          `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerEmail   string          `gorm:"type:varchar(200);not null" json:"customer_email"`
	CustomerPhone   string          `gorm:"type:varchar(20)" json:"customer_phone"`
	ShippingAddress string          `gorm:"type:varchar(500)" json:"shipping_address"`
	BillingAddress  string          `gorm:"type:varchar(500)" json:"billing_address"`
	SubTotal        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"sub_total"`
	Tax             decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"tax"`
	ShippingCost    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"shipping_cost"`
	Total           decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`
	Status          string          `gorm:"type:varchar(50);not null;index" json:"status"`
	PaymentStatus   string          `gorm:"type:varchar(50);not null" json:"payment_status"`
	Notes           string          `gorm:"type:varchar(1000)" json:"notes"`
	OrderDate       time.Time       `gorm:"not null" json:"order_date"`
	ShippedDate     *time.Time      `json:"shipped_date"`
	DeliveredDate   *time.Time      `json:"delivered_date"`

	//注文削除で明細も消える（CASCADE）
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderNumberCounter は日付ごとの採番カウンタ。
// max走査＋parseではなくatomicなupsertで払い出す。
type OrderNumberCounter struct {
	Day     string `gorm:"primaryKey;type:varchar(8)"`
	LastSeq int64  `gorm:"not null"`
}

func (OrderNumberCounter) TableName() string {
	return "order_number_counters"
}
