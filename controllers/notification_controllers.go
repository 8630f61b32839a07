package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetMyNotifications -> the authenticated user's notifications, newest
// first.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifications)
}

// MarkRead -> flag one of the user's notifications as read.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	var notification models.Notification
	if err := nc.DB.Where("user_id = ?", currentUserID(c)).
		First(&notification, c.Param("notification_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	notification.Read = true
	if err := nc.DB.Save(&notification).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification read", notification)
}
