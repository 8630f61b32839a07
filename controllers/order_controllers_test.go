package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/velamode/orderdesk/cart"
	"github.com/velamode/orderdesk/controllers"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Client{},
		&models.Product{}, &models.ProductVariant{},
		&models.Order{}, &models.OrderItem{}, &models.OrderEvent{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// seedClient creates a user with a client record and returns both.
func seedClient(t *testing.T, db *gorm.DB, status string) (models.User, models.Client) {
	user := models.User{Name: "Ana", Email: "ana-" + status + "@acme.test", Password: "x", Role: "client"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	client := models.Client{UserID: user.ID, CompanyName: "Acme", Status: status}
	if err := db.Create(&client).Error; err != nil {
		t.Fatal(err)
	}
	return user, client
}

func seedCatalog(t *testing.T, db *gorm.DB) []models.ProductVariant {
	product := models.Product{
		Name:     "Canvas Tote",
		ImageURL: "tote.jpg",
		Variants: []models.ProductVariant{
			{Name: "Natural", SKU: "TOTE-NAT", Price: 12.5, StockQuantity: 20, LowStockThreshold: 5},
			{Name: "Black", SKU: "TOTE-BLK", Price: 13.0, StockQuantity: 8, LowStockThreshold: 2},
		},
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatal(err)
	}
	return product.Variants
}

// setAuth fakes the auth middleware for tests.
func setAuth(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupOrderRouter(db *gorm.DB, carts *cart.Manager, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(setAuth(userID, role))
	orderCtrl := controllers.NewOrderController(db, carts)
	r.POST("/orders", orderCtrl.Checkout)
	r.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	r.GET("/board", orderCtrl.GetBoard)
	return r
}

func fillCart(carts *cart.Manager, userID uint, variants []models.ProductVariant) *cart.Store {
	store := carts.ForUser(userID)
	store.Add("Canvas Tote", "tote.jpg", variants[0], 3, false)
	store.Add("Canvas Tote", "tote.jpg", variants[1], 2, true)
	return store
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "checkout_ok")
	user, client := seedClient(t, db, models.ClientApproved)
	variants := seedCatalog(t, db)

	carts := cart.NewManager("")
	store := fillCart(carts, user.ID, variants)
	assert.Equal(t, 5, store.ItemCount())
	assert.Equal(t, 2, store.MTOItemCount())

	r := setupOrderRouter(db, carts, user.ID, "client")
	body, _ := json.Marshal(map[string]string{"notes": "first RFQ"})
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	assert.NoError(t, db.Preload("OrderItems").Where("client_id = ?", client.ID).First(&order).Error)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "first RFQ", order.Notes)
	assert.Contains(t, order.OrderNumber, "RFQ-")
	assert.Len(t, order.OrderItems, 2)

	byVariant := map[uint]models.OrderItem{}
	for _, item := range order.OrderItems {
		byVariant[item.VariantID] = item
	}
	assert.Equal(t, 3, byVariant[variants[0].ID].Quantity)
	assert.False(t, byVariant[variants[0].ID].IsMakeToOrder)
	assert.Equal(t, 2, byVariant[variants[1].ID].Quantity)
	assert.True(t, byVariant[variants[1].ID].IsMakeToOrder)

	// Success clears the cart.
	assert.Equal(t, 0, store.ItemCount())
}

func TestFailedCheckoutLeavesCartUntouched(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "checkout_fail")
	user, client := seedClient(t, db, models.ClientApproved)
	variants := seedCatalog(t, db)

	carts := cart.NewManager("")
	store := fillCart(carts, user.ID, variants)
	before := store.Snapshot()

	// Pull a variant out from under the cart so item creation fails
	// inside the checkout transaction.
	assert.NoError(t, db.Delete(&models.ProductVariant{}, variants[1].ID).Error)

	r := setupOrderRouter(db, carts, user.ID, "client")
	req, _ := http.NewRequest("POST", "/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Nothing committed, cart exactly as before.
	var count int64
	db.Model(&models.Order{}).Where("client_id = ?", client.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, before, store.Snapshot())
}

func TestCheckoutRequiresApprovedClient(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "checkout_pending")
	user, _ := seedClient(t, db, models.ClientPending)
	variants := seedCatalog(t, db)

	carts := cart.NewManager("")
	fillCart(carts, user.ID, variants)

	r := setupOrderRouter(db, carts, user.ID, "client")
	req, _ := http.NewRequest("POST", "/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckoutEmptyCart(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "checkout_empty")
	user, _ := seedClient(t, db, models.ClientApproved)

	r := setupOrderRouter(db, cart.NewManager(""), user.ID, "client")
	req, _ := http.NewRequest("POST", "/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func patchStatus(r *gin.Engine, orderID uint, status string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"status": status})
	req, _ := http.NewRequest("PATCH", "/orders/"+itoa(orderID)+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}

func TestStatusTransitionsAreForwardOnly(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "status_flow")
	_, client := seedClient(t, db, models.ClientApproved)

	order := models.Order{OrderNumber: "RFQ-TEST0001", ClientID: client.ID, Status: models.OrderPending}
	assert.NoError(t, db.Create(&order).Error)

	worker := models.User{Name: "Wes", Email: "wes@desk.test", Password: "x", Role: "worker"}
	assert.NoError(t, db.Create(&worker).Error)

	carts := cart.NewManager("")
	r := setupOrderRouter(db, carts, worker.ID, "worker")

	assert.Equal(t, http.StatusOK, patchStatus(r, order.ID, models.OrderConfirmed).Code)
	assert.Equal(t, http.StatusOK, patchStatus(r, order.ID, models.OrderInProduction).Code)

	// in_production <-> ready share a stage.
	assert.Equal(t, http.StatusOK, patchStatus(r, order.ID, models.OrderReady).Code)
	assert.Equal(t, http.StatusOK, patchStatus(r, order.ID, models.OrderInProduction).Code)

	// Backward past the stage is rejected.
	assert.Equal(t, http.StatusConflict, patchStatus(r, order.ID, models.OrderPending).Code)
	assert.Equal(t, http.StatusConflict, patchStatus(r, order.ID, models.OrderConfirmed).Code)

	assert.Equal(t, http.StatusOK, patchStatus(r, order.ID, models.OrderDispatched).Code)
	assert.Equal(t, http.StatusOK, patchStatus(r, order.ID, models.OrderDelivered).Code)

	var updated models.Order
	assert.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderDelivered, updated.Status)
	assert.NotNil(t, updated.ConfirmedAt)
	assert.NotNil(t, updated.DispatchedAt)
	assert.NotNil(t, updated.DeliveredAt)

	// Every accepted transition leaves an audit row.
	var events int64
	db.Model(&models.OrderEvent{}).Where("order_id = ?", order.ID).Count(&events)
	assert.Equal(t, int64(6), events)

	// The client was notified.
	var notifications int64
	db.Model(&models.Notification{}).Count(&notifications)
	assert.Greater(t, notifications, int64(0))
}

func TestUnknownStatusRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "status_unknown")
	_, client := seedClient(t, db, models.ClientApproved)

	order := models.Order{OrderNumber: "RFQ-TEST0002", ClientID: client.ID, Status: models.OrderPending}
	assert.NoError(t, db.Create(&order).Error)

	r := setupOrderRouter(db, cart.NewManager(""), 99, "admin")
	assert.Equal(t, http.StatusBadRequest, patchStatus(r, order.ID, "cancelled").Code)
}

func TestBoardGroupsOrdersByStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "board")
	_, client := seedClient(t, db, models.ClientApproved)

	for i, status := range []string{models.OrderPending, models.OrderPending, models.OrderReady} {
		order := models.Order{
			OrderNumber: "RFQ-BRD0000" + itoa(uint(i)),
			ClientID:    client.ID,
			Status:      status,
		}
		assert.NoError(t, db.Create(&order).Error)
	}

	r := setupOrderRouter(db, cart.NewManager(""), 99, "worker")
	req, _ := http.NewRequest("GET", "/board", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	grouped := data["orders"].(map[string]interface{})
	assert.Len(t, grouped[models.OrderPending], 2)
	assert.Len(t, grouped[models.OrderReady], 1)
	assert.Len(t, grouped[models.OrderDelivered], 0)
}
