package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velamode/orderdesk/aggregate"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

type productSummaryView struct {
	aggregate.ProductSummary
	Remaining   int    `json:"remaining"`
	StockStatus string `json:"stock_status"`
}

// GetProductSummaries -> per-variant demand rollup across all orders,
// with stock classification. This is the admin "what is oversold" view.
func (ac *AnalyticsController) GetProductSummaries(c *gin.Context) {
	orders, err := ac.loadOrders(c)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var variants []models.ProductVariant
	if err := ac.DB.Find(&variants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	summaries := aggregate.SummarizeByProduct(orders, aggregate.StockRecords(variants))
	views := make([]productSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, productSummaryView{
			ProductSummary: s,
			Remaining:      s.Remaining(),
			StockStatus:    s.Status(),
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Product summaries", views)
}

// GetClientSummaries -> per-client order and item rollup.
func (ac *AnalyticsController) GetClientSummaries(c *gin.Context) {
	orders, err := ac.loadOrders(c)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Client summaries", aggregate.SummarizeByClient(orders))
}

// loadOrders fetches the aggregation snapshot, optionally restricted by
// status so dashboards can exclude delivered orders.
func (ac *AnalyticsController) loadOrders(c *gin.Context) ([]models.Order, error) {
	query := ac.DB.Preload("OrderItems").Preload("Client.User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
