package models

import "time"

// Order statuses, in pipeline order. InProduction and Ready share a
// stage: an order moves between them freely but never back past
// Confirmed once it has left it.
const (
	OrderPending      = "pending"
	OrderConfirmed    = "confirmed"
	OrderInProduction = "in_production"
	OrderReady        = "ready"
	OrderDispatched   = "dispatched"
	OrderDelivered    = "delivered"
)

var statusRank = map[string]int{
	OrderPending:      0,
	OrderConfirmed:    1,
	OrderInProduction: 2,
	OrderReady:        2,
	OrderDispatched:   3,
	OrderDelivered:    4,
}

// ValidStatus reports whether s names a known order status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving from to next respects the
// forward-only pipeline. Same-rank moves (in_production <-> ready) are
// allowed.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	OrderNumber  string      `gorm:"type:varchar(40);unique;not null" json:"order_number"`
	ClientID     uint        `gorm:"not null;index" json:"client_id"`
	Client       Client      `gorm:"foreignKey:ClientID" json:"client"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes        string      `gorm:"type:text" json:"notes"`
	AssigneeID   *uint       `gorm:"index" json:"assignee_id,omitempty"`
	Assignee     *User       `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	OrderItems   []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
	ConfirmedAt  *time.Time  `json:"confirmed_at,omitempty"`
	DispatchedAt *time.Time  `json:"dispatched_at,omitempty"`
	DeliveredAt  *time.Time  `json:"delivered_at,omitempty"`
}
