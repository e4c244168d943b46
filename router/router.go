package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/controllers"
	"github.com/sabordacasa/delivery-app/middlewares"
	"github.com/sabordacasa/delivery-app/services"
	"github.com/sabordacasa/delivery-app/utils"
)

// SetupRouter wires every surface: the public storefront, the admin back
// office, the courier portal and the realtime websocket.
func SetupRouter(db *gorm.DB, renderer services.TicketRenderer, printer services.TicketPrinter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	gateway := services.GetMercadoPagoService()
	checkoutSvc := services.NewCheckoutService(db, gateway)
	cepSvc := services.NewCEPService()

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	groupCtrl := controllers.NewOptionGroupController(db)
	checkoutCtrl := controllers.NewCheckoutController(db, checkoutSvc, cepSvc)
	orderCtrl := controllers.NewOrderController(db, renderer, printer)
	ticketCtrl := controllers.NewTicketController(db, renderer)
	courierCtrl := controllers.NewCourierController(db)
	neighborhoodCtrl := controllers.NewNeighborhoodController(db)
	cashCtrl := controllers.NewCashMovementController(db)
	settingsCtrl := controllers.NewSettingsController(db)
	customerCtrl := controllers.NewCustomerController(db)
	paymentCtrl := controllers.NewPaymentController(db, gateway)
	wsCtrl := controllers.NewWSController()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC STOREFRONT
	// ----------------------------------------------------------------
	storefront := r.Group("/api")
	storefront.Use(middlewares.NewRateLimiter(50, 1).RateLimit())
	{
		storefront.GET("/store", checkoutCtrl.GetStoreInfo)
		storefront.GET("/menu", menuCtrl.GetPublicMenu)
		storefront.POST("/checkout", checkoutCtrl.PlaceOrder)
		storefront.GET("/orders/:token", checkoutCtrl.TrackOrder)
		storefront.GET("/customers/:phone", checkoutCtrl.GetCustomer)
		storefront.GET("/cep/:cep", checkoutCtrl.LookupCEP)
	}

	// Payment gateway webhook; Mercado Pago posts here directly.
	r.POST("/api/payments/webhook", paymentCtrl.Webhook)

	// Login endpoints get the strict limiter.
	login := r.Group("/")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/admin/login", userCtrl.Login)
		login.POST("/courier/login", courierCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      ADMIN BACK OFFICE
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(utils.RoleAdmin))
	{
		admin.POST("/register", userCtrl.Register)
		admin.POST("/logout", userCtrl.Logout)
		admin.GET("/profile", userCtrl.GetProfile)

		admin.GET("/menu-items", menuCtrl.GetAllMenuItems)
		admin.POST("/menu-items", menuCtrl.CreateMenuItem)
		admin.GET("/menu-items/:id", menuCtrl.GetMenuItem)
		admin.PATCH("/menu-items/:id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", menuCtrl.DeleteMenuItem)
		admin.POST("/menu-items/:id/groups/:group_id", menuCtrl.LinkOptionGroup)
		admin.DELETE("/menu-items/:id/groups/:group_id", menuCtrl.UnlinkOptionGroup)

		admin.GET("/option-groups", groupCtrl.GetAllGroups)
		admin.POST("/option-groups", groupCtrl.CreateGroup)
		admin.GET("/option-groups/:id", groupCtrl.GetGroup)
		admin.PATCH("/option-groups/:id", groupCtrl.UpdateGroup)
		admin.DELETE("/option-groups/:id", groupCtrl.DeleteGroup)
		admin.POST("/option-groups/:id/options", groupCtrl.CreateOption)
		admin.PATCH("/option-groups/:id/options/:option_id", groupCtrl.UpdateOption)
		admin.DELETE("/option-groups/:id/options/:option_id", groupCtrl.DeleteOption)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrder)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)
		admin.POST("/orders/:id/courier", orderCtrl.AssignCourier)
		admin.POST("/orders/:id/reprint", orderCtrl.Reprint)
		admin.GET("/orders/:id/ticket", ticketCtrl.GetTicket)

		admin.GET("/couriers", courierCtrl.GetAllCouriers)
		admin.POST("/couriers", courierCtrl.CreateCourier)
		admin.GET("/couriers/:id", courierCtrl.GetCourier)
		admin.PATCH("/couriers/:id", courierCtrl.UpdateCourier)
		admin.DELETE("/couriers/:id", courierCtrl.DeleteCourier)
		admin.PATCH("/couriers/:id/status", courierCtrl.UpdateCourierStatus)

		admin.GET("/neighborhoods", neighborhoodCtrl.GetAllNeighborhoods)
		admin.POST("/neighborhoods", neighborhoodCtrl.CreateNeighborhood)
		admin.PATCH("/neighborhoods/:id", neighborhoodCtrl.UpdateNeighborhood)
		admin.DELETE("/neighborhoods/:id", neighborhoodCtrl.DeleteNeighborhood)

		admin.GET("/cash-movements", cashCtrl.GetAllMovements)
		admin.POST("/cash-movements", cashCtrl.CreateMovement)
		admin.DELETE("/cash-movements/:id", cashCtrl.DeleteMovement)

		admin.GET("/customers", customerCtrl.GetAllCustomers)
		admin.GET("/customers/:id/orders", customerCtrl.GetCustomerOrders)

		admin.GET("/settings", settingsCtrl.GetSettings)
		admin.PATCH("/settings", settingsCtrl.UpdateSettings)
	}

	// ----------------------------------------------------------------
	//                      COURIER PORTAL
	// ----------------------------------------------------------------
	courier := r.Group("/courier")
	courier.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(utils.RoleCourier))
	{
		courier.GET("/orders", courierCtrl.GetMyOrders)
		courier.POST("/orders/:id/delivered", courierCtrl.MarkDelivered)
	}

	// Realtime dashboard updates. Token arrives as a query parameter.
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("", wsCtrl.Connect)
	}

	return r
}
