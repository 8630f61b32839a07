package models

import "time"

// OrderEvent is an audit row written on every status change.
type OrderEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	Order      Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FromStatus string    `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus   string    `gorm:"type:varchar(20);not null" json:"to_status"`
	ActorID    uint      `gorm:"not null" json:"actor_id"`
	Note       string    `gorm:"type:text" json:"note"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
