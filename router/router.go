package router

import (
	"github.com/gin-gonic/gin"
	"github.com/velamode/orderdesk/cart"
	"github.com/velamode/orderdesk/controllers"
	"github.com/velamode/orderdesk/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, carts *cart.Manager) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	clientCtrl := controllers.NewClientController(db)
	productCtrl := controllers.NewProductController(db)
	cartCtrl := controllers.NewCartController(db, carts)
	orderCtrl := controllers.NewOrderController(db, carts)
	analyticsCtrl := controllers.NewAnalyticsController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalog is readable without auth so prospects can browse.
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:product_id", productCtrl.GetProductByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/notifications", notificationCtrl.GetMyNotifications)
		auth.PATCH("/notifications/:notification_id/read", notificationCtrl.MarkRead)

		// -- CLIENT --
		client := auth.Group("/")
		client.Use(middlewares.RequireRole("client"))
		{
			client.GET("/cart", cartCtrl.GetCart)
			client.POST("/cart/items", cartCtrl.AddItem)
			client.PATCH("/cart/items/:variant_id", cartCtrl.UpdateItem)
			client.DELETE("/cart/items/:variant_id", cartCtrl.RemoveItem)
			client.DELETE("/cart", cartCtrl.ClearCart)

			client.POST("/orders", orderCtrl.Checkout)
			client.GET("/my/orders", orderCtrl.GetMyOrders)
		}

		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		// -- WORKER / ADMIN --
		staff := auth.Group("/")
		staff.Use(middlewares.RequireRole("worker"))
		{
			staff.GET("/orders", orderCtrl.GetAllOrders)
			staff.GET("/board", orderCtrl.GetBoard)
			staff.GET("/board/ws", controllers.BoardHandler)
			staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
			staff.GET("/orders/:order_id/events", orderCtrl.GetOrderEvents)
			staff.GET("/stock", productCtrl.GetStockSnapshot)
		}

		// -- ADMIN --
		admin := auth.Group("/admin")
		admin.Use(middlewares.RequireRole("admin"))
		{
			admin.GET("/users", userCtrl.GetAllUsers)
			admin.POST("/users", userCtrl.CreateUser)

			admin.GET("/clients", clientCtrl.GetAllClients)
			admin.GET("/clients/:client_id", clientCtrl.GetClientByID)
			admin.PATCH("/clients/:client_id/status", clientCtrl.UpdateClientStatus)

			admin.POST("/products", productCtrl.CreateProduct)
			admin.PATCH("/products/:product_id", productCtrl.UpdateProduct)
			admin.DELETE("/products/:product_id", productCtrl.DeleteProduct)
			admin.POST("/products/:product_id/variants", productCtrl.CreateVariant)
			admin.PATCH("/variants/:variant_id", productCtrl.UpdateVariant)
			admin.DELETE("/variants/:variant_id", productCtrl.DeleteVariant)

			admin.PATCH("/orders/:order_id/assign", orderCtrl.AssignOrder)

			admin.GET("/analytics/products", analyticsCtrl.GetProductSummaries)
			admin.GET("/analytics/clients", analyticsCtrl.GetClientSummaries)
		}
	}

	return r
}
