package models

import "time"

// DefaultProductImage is served when a product was created without an upload.
const DefaultProductImage = "default.png"

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `gorm:"not null" json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ImageFilename string    `json:"image_filename"`
	CreatedAt     time.Time `json:"created_at"`
}

// ImageOrDefault returns the stored filename, falling back to the placeholder.
func (p *Product) ImageOrDefault() string {
	if p.ImageFilename == "" {
		return DefaultProductImage
	}
	return p.ImageFilename
}
