package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/velamode/orderdesk/cart"
	"github.com/velamode/orderdesk/controllers"
	"github.com/velamode/orderdesk/utils"
)

func setupCartRouter(t *testing.T, dbName string, userID uint) (*gin.Engine, *cart.Manager) {
	db := setupTestDB(t, dbName)
	seedCatalog(t, db)

	carts := cart.NewManager("")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(setAuth(userID, "client"))
	cartCtrl := controllers.NewCartController(db, carts)
	r.GET("/cart", cartCtrl.GetCart)
	r.POST("/cart/items", cartCtrl.AddItem)
	r.PATCH("/cart/items/:variant_id", cartCtrl.UpdateItem)
	r.DELETE("/cart/items/:variant_id", cartCtrl.RemoveItem)
	r.DELETE("/cart", cartCtrl.ClearCart)
	return r, carts
}

func doJSON(r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartCounts(t *testing.T, w *httptest.ResponseRecorder) (int, int) {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	return int(data["item_count"].(float64)), int(data["mto_item_count"].(float64))
}

func TestCartFlow(t *testing.T) {
	utils.InitLogger()
	r, carts := setupCartRouter(t, "cart_flow", 1)

	// Add 3 of variant 1, then 2 MTO of variant 2.
	w := doJSON(r, "POST", "/cart/items", map[string]interface{}{"variant_id": 1, "delta": 3})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, "POST", "/cart/items", map[string]interface{}{"variant_id": 2, "delta": 2, "is_make_to_order": true})
	items, mto := cartCounts(t, w)
	assert.Equal(t, 5, items)
	assert.Equal(t, 2, mto)

	// Overwrite variant 1 to quantity 1.
	w = doJSON(r, "PATCH", "/cart/items/1", map[string]interface{}{"quantity": 1})
	items, mto = cartCounts(t, w)
	assert.Equal(t, 3, items)
	assert.Equal(t, 2, mto)

	// Negative delta below zero drops the line.
	w = doJSON(r, "POST", "/cart/items", map[string]interface{}{"variant_id": 1, "delta": -5})
	items, _ = cartCounts(t, w)
	assert.Equal(t, 2, items)
	assert.Equal(t, 1, carts.ForUser(1).Len())

	// Remove, then clear.
	w = doJSON(r, "DELETE", "/cart/items/2", nil)
	items, mto = cartCounts(t, w)
	assert.Equal(t, 0, items)
	assert.Equal(t, 0, mto)

	doJSON(r, "POST", "/cart/items", map[string]interface{}{"variant_id": 1, "delta": 4})
	w = doJSON(r, "DELETE", "/cart", nil)
	items, _ = cartCounts(t, w)
	assert.Equal(t, 0, items)
}

func TestCartAddUnknownVariant(t *testing.T) {
	utils.InitLogger()
	r, _ := setupCartRouter(t, "cart_unknown", 1)

	w := doJSON(r, "POST", "/cart/items", map[string]interface{}{"variant_id": 999, "delta": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartIsPerUser(t *testing.T) {
	utils.InitLogger()
	r1, carts := setupCartRouter(t, "cart_per_user", 1)
	doJSON(r1, "POST", "/cart/items", map[string]interface{}{"variant_id": 1, "delta": 3})

	assert.Equal(t, 3, carts.ForUser(1).ItemCount())
	assert.Equal(t, 0, carts.ForUser(2).ItemCount())
}
