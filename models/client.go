package models

import "time"

// Client approval states.
const (
	ClientPending  = "pending"
	ClientApproved = "approved"
	ClientRejected = "rejected"
)

type Client struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	CompanyName string    `gorm:"type:varchar(255);not null" json:"company_name"`
	Phone       string    `gorm:"type:varchar(50)" json:"phone"`
	Address     string    `gorm:"type:text" json:"address"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
