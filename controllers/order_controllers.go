package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/velamode/orderdesk/board"
	"github.com/velamode/orderdesk/cart"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB    *gorm.DB
	Carts *cart.Manager
}

func NewOrderController(db *gorm.DB, carts *cart.Manager) *OrderController {
	return &OrderController{DB: db, Carts: carts}
}

func generateOrderNumber() string {
	return "RFQ-" + strings.ToUpper(uuid.NewString()[:8])
}

// Checkout -> convert the session's cart into an order. The whole order
// is created inside one transaction: if any item fails, nothing is
// written and the cart is left exactly as it was so the client can
// retry. The cart is cleared only after the transaction commits.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID := currentUserID(c)

	var client models.Client
	if err := oc.DB.Where("user_id = ?", userID).First(&client).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no client account for this user"))
		return
	}
	if client.Status != models.ClientApproved {
		utils.RespondError(c, http.StatusForbidden, errors.New("client account is not approved"))
		return
	}

	type request struct {
		Notes string `json:"notes"`
	}
	var req request
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	store := oc.Carts.ForUser(userID)
	lines := store.Snapshot()
	if len(lines) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}

	order := models.Order{
		OrderNumber: generateOrderNumber(),
		ClientID:    client.ID,
		Status:      models.OrderPending,
		Notes:       req.Notes,
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, line := range lines {
			var variant models.ProductVariant
			if err := tx.First(&variant, line.VariantID).Error; err != nil {
				return fmt.Errorf("variant %d no longer available: %w", line.VariantID, err)
			}
			item := models.OrderItem{
				OrderID:       order.ID,
				VariantID:     variant.ID,
				ProductID:     variant.ProductID,
				ProductName:   line.ProductName,
				VariantName:   line.VariantName,
				ImageURL:      line.ProductImage,
				Quantity:      line.Quantity,
				Price:         variant.Price,
				IsMakeToOrder: line.IsMakeToOrder,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Cart untouched: the client retries without re-entering items.
		utils.ErrorLogger.Printf("Checkout failed for client %d: %v", client.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	store.Clear()

	if err := oc.DB.Preload("OrderItems").Preload("Client.User").First(&order, order.ID).Error; err == nil {
		board.BroadcastOrderCreated(order)
	}

	utils.InfoLogger.Printf("Order %s created for client %d (%d lines)", order.OrderNumber, client.ID, len(lines))

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> staff listing with items and client, optionally
// filtered by status or assignee.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems").Preload("Client.User").Preload("Assignee")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if assignee := c.Query("assignee_id"); assignee != "" {
		query = query.Where("assignee_id = ?", assignee)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetMyOrders -> the authenticated client's own orders.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	var client models.Client
	if err := oc.DB.Where("user_id = ?", currentUserID(c)).First(&client).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no client account for this user"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Where("client_id = ?", client.ID).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order. Clients only see their own.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("Client.User").Preload("Assignee").
		First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if role, _ := c.Get("role"); role == "client" {
		var client models.Client
		if err := oc.DB.Where("user_id = ?", currentUserID(c)).First(&client).Error; err != nil || client.ID != order.ClientID {
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> move an order along the pipeline. Backward
// transitions are rejected; in_production and ready share a stage and
// may swap freely.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	type request struct {
		Status string  `json:"status" binding:"required"`
		Notes  *string `json:"notes"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("Client").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot move order from %s back to %s", order.Status, req.Status))
		return
	}

	previous := order.Status
	now := time.Now()
	order.Status = req.Status
	switch req.Status {
	case models.OrderConfirmed:
		if order.ConfirmedAt == nil {
			order.ConfirmedAt = &now
		}
	case models.OrderDispatched:
		if order.DispatchedAt == nil {
			order.DispatchedAt = &now
		}
	case models.OrderDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	event := models.OrderEvent{
		OrderID:    order.ID,
		FromStatus: previous,
		ToStatus:   order.Status,
		ActorID:    currentUserID(c),
	}
	if req.Notes != nil {
		event.Note = *req.Notes
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	clientUserID := order.Client.UserID
	notification := models.Notification{
		UserID:  &clientUserID,
		Title:   "Order update",
		Message: fmt.Sprintf("Order %s is now %s", order.OrderNumber, order.Status),
	}
	if err := oc.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create notification: %v", err)
	}

	board.BroadcastOrderStatus(order)

	utils.InfoLogger.Printf("Order %s: %s -> %s", order.OrderNumber, previous, order.Status)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// AssignOrder -> admin hands an order to a worker.
func (oc *OrderController) AssignOrder(c *gin.Context) {
	type request struct {
		AssigneeID uint `json:"assignee_id" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var worker models.User
	if err := oc.DB.First(&worker, req.AssigneeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if worker.Role != "worker" && worker.Role != "admin" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("assignee must be a worker"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.AssigneeID = &worker.ID
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	workerID := worker.ID
	notification := models.Notification{
		UserID:  &workerID,
		Title:   "Order assigned",
		Message: fmt.Sprintf("Order %s has been assigned to you", order.OrderNumber),
	}
	if err := oc.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create notification: %v", err)
	}

	board.BroadcastOrderAssigned(order)

	utils.RespondJSON(c, http.StatusOK, "Order assigned", order)
}

// GetBoard -> kanban payload: orders grouped by status in pipeline
// order. Workers can pass mine=true to see only their assignments.
func (oc *OrderController) GetBoard(c *gin.Context) {
	query := oc.DB.Preload("OrderItems").Preload("Client.User").Preload("Assignee")
	if c.Query("mine") == "true" {
		query = query.Where("assignee_id = ?", currentUserID(c))
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	columns := []string{
		models.OrderPending,
		models.OrderConfirmed,
		models.OrderInProduction,
		models.OrderReady,
		models.OrderDispatched,
		models.OrderDelivered,
	}
	grouped := make(map[string][]models.Order, len(columns))
	for _, status := range columns {
		grouped[status] = []models.Order{}
	}
	for _, order := range orders {
		grouped[order.Status] = append(grouped[order.Status], order)
	}

	utils.RespondJSON(c, http.StatusOK, "Order board", gin.H{
		"columns": columns,
		"orders":  grouped,
	})
}

// GetOrderEvents -> status audit trail for one order.
func (oc *OrderController) GetOrderEvents(c *gin.Context) {
	var events []models.OrderEvent
	if err := oc.DB.Where("order_id = ?", c.Param("order_id")).
		Order("created_at ASC").Find(&events).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order events", events)
}
