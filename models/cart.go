package models

// CartItem is one pending line in a user's cart. One row per (user, product):
// adding the same product again accumulates quantity on the existing row.
// Rows are deleted on checkout or explicit removal.
type CartItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint     `gorm:"not null;index" json:"user_id"`
	ProductID uint     `gorm:"not null" json:"product_id"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// LineTotal prices the line at the product's current price. Cart totals are
// always computed on demand, never stored.
func (ci *CartItem) LineTotal() float64 {
	if ci.Product == nil {
		return 0
	}
	return ci.Product.Price * float64(ci.Quantity)
}
