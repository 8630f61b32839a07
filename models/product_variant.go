package models

import "time"

// ProductVariant is the unit of stock tracking: one purchasable
// configuration (size, colour) of a product.
type ProductVariant struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductID         uint      `gorm:"not null;index" json:"product_id"`
	Product           Product   `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	SKU               string    `gorm:"type:varchar(100);unique;not null" json:"sku"`
	Price             float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"price"`
	StockQuantity     int       `gorm:"not null;default:0" json:"stock_quantity"`
	LowStockThreshold int       `gorm:"not null;default:10" json:"low_stock_threshold"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}
