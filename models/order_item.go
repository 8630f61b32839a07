package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order     Order          `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VariantID uint           `gorm:"not null;index" json:"variant_id"`
	Variant   ProductVariant `gorm:"foreignKey:VariantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	// Display fields captured at order time so summaries survive later
	// catalog edits.
	ProductName   string    `gorm:"type:varchar(255);not null" json:"product_name"`
	VariantName   string    `gorm:"type:varchar(255);not null" json:"variant_name"`
	ImageURL      string    `gorm:"type:varchar(255)" json:"image_url"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	IsMakeToOrder bool      `gorm:"not null;default:false" json:"is_make_to_order"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
