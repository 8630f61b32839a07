package models

import "time"

type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Category    string           `gorm:"type:varchar(100)" json:"category"`
	Description string           `gorm:"type:text" json:"description"`
	ImageURL    string           `gorm:"type:varchar(255)" json:"image_url"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants"`
	CreatedAt   time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`
}
