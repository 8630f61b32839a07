package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velamode/orderdesk/cart"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
	"gorm.io/gorm"
)

type CartController struct {
	DB    *gorm.DB
	Carts *cart.Manager
}

func NewCartController(db *gorm.DB, carts *cart.Manager) *CartController {
	return &CartController{DB: db, Carts: carts}
}

func cartView(store *cart.Store) gin.H {
	return gin.H{
		"items":          store.Snapshot(),
		"item_count":     store.ItemCount(),
		"mto_item_count": store.MTOItemCount(),
	}
}

// GetCart -> the session's cart with derived counts.
func (cc *CartController) GetCart(c *gin.Context) {
	store := cc.Carts.ForUser(currentUserID(c))
	utils.RespondJSON(c, http.StatusOK, "Cart contents", cartView(store))
}

// AddItem -> apply a quantity delta for a variant. Negative deltas
// subtract; a quantity reaching zero drops the line.
func (cc *CartController) AddItem(c *gin.Context) {
	type request struct {
		VariantID     uint `json:"variant_id" binding:"required"`
		Delta         int  `json:"delta" binding:"required"`
		IsMakeToOrder bool `json:"is_make_to_order"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var variant models.ProductVariant
	if err := cc.DB.Preload("Product").First(&variant, req.VariantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	store := cc.Carts.ForUser(currentUserID(c))
	store.Add(variant.Product.Name, variant.Product.ImageURL, variant, req.Delta, req.IsMakeToOrder)

	utils.RespondJSON(c, http.StatusOK, "Cart updated", cartView(store))
}

// UpdateItem -> overwrite the quantity for a variant already in the
// cart; zero or less removes it. Absent variants are a no-op.
func (cc *CartController) UpdateItem(c *gin.Context) {
	variantID, err := strconv.ParseUint(c.Param("variant_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	type request struct {
		Quantity int `json:"quantity"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store := cc.Carts.ForUser(currentUserID(c))
	store.SetQuantity(uint(variantID), req.Quantity)

	utils.RespondJSON(c, http.StatusOK, "Cart updated", cartView(store))
}

// RemoveItem -> drop a variant from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	variantID, err := strconv.ParseUint(c.Param("variant_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store := cc.Carts.ForUser(currentUserID(c))
	store.Remove(uint(variantID))

	utils.RespondJSON(c, http.StatusOK, "Cart updated", cartView(store))
}

// ClearCart -> empty the cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	store := cc.Carts.ForUser(currentUserID(c))
	store.Clear()

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cartView(store))
}
