package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Address      Address   `gorm:"embedded" json:"address"` // Embeds address fields directly
	AdminRights  bool      `gorm:"default:false" json:"admin_rights"`
	CreatedAt    time.Time `json:"created_at"`
}

// Address model embedded in User; copied field-by-field onto an Order at checkout.
type Address struct {
	Country      string `json:"country"`
	Street       string `json:"street"`
	PostalNumber string `json:"postal_number"`
	HouseNumber  string `json:"house_number"`
	BusNumber    string `json:"bus_number"`
}
