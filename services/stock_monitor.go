package services

import (
	"fmt"
	"time"

	"github.com/velamode/orderdesk/aggregate"
	"github.com/velamode/orderdesk/board"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
	"gorm.io/gorm"
)

// StockMonitor periodically re-checks every variant's stock position
// against open non-MTO demand and alerts staff when a variant drops to
// low or out of stock. Alerts fire on transition only: a variant that
// stays low is not re-announced every tick.
type StockMonitor struct {
	DB         *gorm.DB
	StopChan   chan struct{}
	Interval   time.Duration
	lastStatus map[uint]string
}

func NewStockMonitor(db *gorm.DB) *StockMonitor {
	return &StockMonitor{
		DB:         db,
		StopChan:   make(chan struct{}),
		Interval:   30 * time.Second,
		lastStatus: make(map[uint]string),
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.CheckStock()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

// CheckStock runs one poll cycle. Start calls it on every tick.
func (sm *StockMonitor) CheckStock() {
	var variants []models.ProductVariant
	if err := sm.DB.Find(&variants).Error; err != nil {
		utils.ErrorLogger.Printf("Stock monitor: fetch variants: %v", err)
		return
	}

	// Delivered orders no longer hold demand against stock.
	var orders []models.Order
	if err := sm.DB.Preload("OrderItems").
		Where("status <> ?", models.OrderDelivered).
		Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("Stock monitor: fetch orders: %v", err)
		return
	}

	demand := make(map[uint]int)
	for _, order := range orders {
		for _, item := range order.OrderItems {
			if !item.IsMakeToOrder {
				demand[item.VariantID] += item.Quantity
			}
		}
	}

	for _, variant := range variants {
		status := aggregate.StockStatus(variant.StockQuantity, variant.LowStockThreshold, demand[variant.ID])

		previous, seen := sm.lastStatus[variant.ID]
		sm.lastStatus[variant.ID] = status
		if status == aggregate.StatusInStock || (seen && previous == status) {
			continue
		}

		sm.alert(variant, status, demand[variant.ID])
	}
}

func (sm *StockMonitor) alert(variant models.ProductVariant, status string, ordered int) {
	remaining := variant.StockQuantity - ordered
	message := fmt.Sprintf("Variant %s (%s): %s, %d remaining after open demand",
		variant.Name, variant.SKU, status, remaining)

	var admins []models.User
	if err := sm.DB.Where("role = ?", "admin").Find(&admins).Error; err != nil {
		utils.ErrorLogger.Printf("Stock monitor: fetch admins: %v", err)
	}
	for _, admin := range admins {
		adminID := admin.ID
		notification := models.Notification{
			UserID:  &adminID,
			Title:   "Stock alert",
			Message: message,
		}
		if err := sm.DB.Create(&notification).Error; err != nil {
			utils.ErrorLogger.Printf("Stock monitor: create notification: %v", err)
		}
	}

	board.BroadcastStockAlert(map[string]interface{}{
		"variant_id": variant.ID,
		"sku":        variant.SKU,
		"status":     status,
		"remaining":  remaining,
	})

	utils.InfoLogger.Printf("Stock alert: %s", message)
}
