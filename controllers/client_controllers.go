package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
	"gorm.io/gorm"
)

type ClientController struct {
	DB *gorm.DB
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{DB: db}
}

// GetAllClients -> admin listing, optionally filtered by approval
// status.
func (cc *ClientController) GetAllClients(c *gin.Context) {
	query := cc.DB.Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of clients", clients)
}

// GetClientByID -> detail of one client account.
func (cc *ClientController) GetClientByID(c *gin.Context) {
	var client models.Client
	if err := cc.DB.Preload("User").First(&client, c.Param("client_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Client detail", client)
}

// UpdateClientStatus -> approve or reject a pending client. The client
// gets a notification either way.
func (cc *ClientController) UpdateClientStatus(c *gin.Context) {
	type request struct {
		Status string `json:"status" binding:"required,oneof=approved rejected pending"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var client models.Client
	if err := cc.DB.Preload("User").First(&client, c.Param("client_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	client.Status = req.Status
	if err := cc.DB.Save(&client).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	userID := client.UserID
	notification := models.Notification{
		UserID:  &userID,
		Title:   "Account review",
		Message: fmt.Sprintf("Your account for %s is now %s", client.CompanyName, client.Status),
	}
	if err := cc.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create notification: %v", err)
	}

	utils.InfoLogger.Printf("Client %d (%s) set to %s", client.ID, client.CompanyName, client.Status)

	utils.RespondJSON(c, http.StatusOK, "Client status updated", client)
}
