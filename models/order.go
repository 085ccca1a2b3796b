package models

import "time"

// Order is written once at checkout and never mutated afterwards, except for
// the Complete flag which admins may toggle. TotalPrice and the address fields
// are snapshots: later changes to product prices or the user's profile do not
// touch existing orders.
type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice  float64     `gorm:"not null" json:"total_price"`
	Address     Address     `gorm:"embedded" json:"address"`
	Complete    bool        `gorm:"default:false" json:"complete"`
	DateOrdered time.Time   `gorm:"not null" json:"date_ordered"`
}

// OrderItem snapshots what was bought. ProductName and UnitPrice are copied at
// checkout so order history stays intact when products are repriced or deleted;
// ProductID is kept for aggregation, without a foreign key constraint.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
}
