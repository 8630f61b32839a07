package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/velamode/orderdesk/controllers"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
)

func TestRegisterAndApproveClient(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "client_approval")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	userCtrl := controllers.NewUserController(db)
	clientCtrl := controllers.NewClientController(db)
	r.POST("/register", userCtrl.Register)
	admin := r.Group("/admin", setAuth(99, "admin"))
	admin.PATCH("/clients/:client_id/status", clientCtrl.UpdateClientStatus)

	// Public signup lands as a pending client.
	w := doJSON(r, "POST", "/register", map[string]interface{}{
		"name":         "Ana",
		"email":        "ana@acme.test",
		"password":     "secret-pass",
		"company_name": "Acme",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var client models.Client
	assert.NoError(t, db.Preload("User").First(&client).Error)
	assert.Equal(t, models.ClientPending, client.Status)
	assert.Equal(t, "client", client.User.Role)

	// Approval flips the status and notifies the user.
	w = doJSON(r, "PATCH", "/admin/clients/"+itoa(client.ID)+"/status",
		map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, db.First(&client, client.ID).Error)
	assert.Equal(t, models.ClientApproved, client.Status)

	var notification models.Notification
	assert.NoError(t, db.Where("user_id = ?", client.UserID).First(&notification).Error)
	assert.Contains(t, notification.Message, "approved")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "client_badpass")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", controllers.NewUserController(db).Register)

	w := doJSON(r, "POST", "/register", map[string]interface{}{
		"name":         "Ana",
		"email":        "ana@acme.test",
		"password":     "short",
		"company_name": "Acme",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRoundTrip(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t, "login_roundtrip")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	userCtrl := controllers.NewUserController(db)
	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)

	doJSON(r, "POST", "/register", map[string]interface{}{
		"name":         "Ana",
		"email":        "ana@acme.test",
		"password":     "secret-pass",
		"company_name": "Acme",
	})

	w := doJSON(r, "POST", "/login", map[string]interface{}{
		"email":    "ana@acme.test",
		"password": "secret-pass",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", "/login", map[string]interface{}{
		"email":    "ana@acme.test",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
