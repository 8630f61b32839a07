package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velamode/orderdesk/aggregate"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> catalog listing with variants.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	query := pc.DB.Preload("Variants")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductByID -> one product with variants.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Preload("Variants").First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// GetStockSnapshot -> the variant/stock listing the analytics views
// aggregate against.
func (pc *ProductController) GetStockSnapshot(c *gin.Context) {
	var variants []models.ProductVariant
	if err := pc.DB.Find(&variants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock snapshot", aggregate.StockRecords(variants))
}

// CreateProduct -> admin creates a product, optionally with variants.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	type variantReq struct {
		Name              string  `json:"name" binding:"required"`
		SKU               string  `json:"sku" binding:"required"`
		Price             float64 `json:"price"`
		StockQuantity     int     `json:"stock_quantity"`
		LowStockThreshold *int    `json:"low_stock_threshold"`
	}
	type request struct {
		Name        string       `json:"name" binding:"required"`
		Category    string       `json:"category"`
		Description string       `json:"description"`
		ImageURL    string       `json:"image_url"`
		Variants    []variantReq `json:"variants"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	for _, v := range req.Variants {
		variant := models.ProductVariant{
			Name:              v.Name,
			SKU:               v.SKU,
			Price:             v.Price,
			StockQuantity:     v.StockQuantity,
			LowStockThreshold: aggregate.DefaultLowStockThreshold,
		}
		if v.LowStockThreshold != nil {
			variant.LowStockThreshold = *v.LowStockThreshold
		}
		product.Variants = append(product.Variants, variant)
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct -> partial update of display fields.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Name        *string `json:"name"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct -> removes a product and its variants.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Select("Variants").Delete(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}

// CreateVariant -> add a variant to an existing product.
func (pc *ProductController) CreateVariant(c *gin.Context) {
	var product models.Product
	if err := pc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Name              string  `json:"name" binding:"required"`
		SKU               string  `json:"sku" binding:"required"`
		Price             float64 `json:"price"`
		StockQuantity     int     `json:"stock_quantity"`
		LowStockThreshold *int    `json:"low_stock_threshold"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	variant := models.ProductVariant{
		ProductID:         product.ID,
		Name:              req.Name,
		SKU:               req.SKU,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: aggregate.DefaultLowStockThreshold,
	}
	if req.LowStockThreshold != nil {
		variant.LowStockThreshold = *req.LowStockThreshold
	}

	if err := pc.DB.Create(&variant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Variant created", variant)
}

// UpdateVariant -> partial update, including stock adjustments.
func (pc *ProductController) UpdateVariant(c *gin.Context) {
	var variant models.ProductVariant
	if err := pc.DB.First(&variant, c.Param("variant_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Name              *string  `json:"name"`
		Price             *float64 `json:"price"`
		StockQuantity     *int     `json:"stock_quantity"`
		LowStockThreshold *int     `json:"low_stock_threshold"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		variant.Name = *req.Name
	}
	if req.Price != nil {
		variant.Price = *req.Price
	}
	if req.StockQuantity != nil {
		variant.StockQuantity = *req.StockQuantity
	}
	if req.LowStockThreshold != nil {
		variant.LowStockThreshold = *req.LowStockThreshold
	}

	if err := pc.DB.Save(&variant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Variant updated", variant)
}

// DeleteVariant -> remove a variant from the catalog.
func (pc *ProductController) DeleteVariant(c *gin.Context) {
	var variant models.ProductVariant
	if err := pc.DB.First(&variant, c.Param("variant_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Delete(&variant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Variant deleted", nil)
}
