package router

import (
	"qr_dine_backend/internal/handlers"
	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up login and registration routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, staffService services.StaffService) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.RegisterRestaurant)
		authRoutes.POST("/login", authHandler.LoginRestaurant)
		authRoutes.POST("/staff/login", authHandler.LoginStaff)
		authRoutes.POST("/staff/logout", authHandler.LogoutStaff)
		authRoutes.POST("/admin/login", authHandler.LoginAdmin)

		authRequired := authRoutes.Group("")
		authRequired.Use(middleware.AuthMiddleware(staffService))
		{
			authRequired.GET("/me", authHandler.Me)
		}
	}
}

// SetupPublicRoutes sets up the customer-facing QR surface. No auth: these
// are reached by scanning a table QR code.
func SetupPublicRoutes(
	apiGroup *gin.RouterGroup,
	restaurantHandler *handlers.RestaurantHandler,
	orderHandler *handlers.OrderHandler,
	discountHandler *handlers.DiscountHandler,
	feedbackHandler *handlers.FeedbackHandler,
) {
	publicRoutes := apiGroup.Group("/restaurants")
	{
		publicRoutes.GET("", restaurantHandler.Search)
		publicRoutes.GET("/:id", restaurantHandler.GetByID)
		publicRoutes.GET("/:id/menu", restaurantHandler.GetMenu)
		publicRoutes.POST("/:id/orders", orderHandler.PlaceOrder)
		publicRoutes.POST("/:id/discounts/apply", discountHandler.Apply)
		publicRoutes.POST("/:id/feedback", feedbackHandler.Submit)
	}
}

// SetupWebhookRoutes sets up the delivery-platform ingestion endpoints.
func SetupWebhookRoutes(apiGroup *gin.RouterGroup, thirdPartyHandler *handlers.ThirdPartyHandler) {
	webhookRoutes := apiGroup.Group("/third-party/webhook")
	{
		webhookRoutes.POST("/swiggy", thirdPartyHandler.SwiggyWebhook)
		webhookRoutes.POST("/zomato", thirdPartyHandler.ZomatoWebhook)
	}
}

// SetupRestaurantRoutes sets up the owner profile routes.
func SetupRestaurantRoutes(authenticatedGroup *gin.RouterGroup, restaurantHandler *handlers.RestaurantHandler) {
	profileRoutes := authenticatedGroup.Group("/restaurant")
	{
		profileRoutes.GET("/profile", middleware.RequirePermission("settings", "view"), restaurantHandler.GetProfile)
		profileRoutes.PUT("/profile", middleware.RequirePermission("settings", "update"), restaurantHandler.UpdateProfile)
		profileRoutes.PUT("/features", middleware.RequirePermission("settings", "update"), restaurantHandler.UpdateFeatures)
	}
}

// SetupMenuRoutes sets up staff-side menu management.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := authenticatedGroup.Group("/menu")
	{
		menuRoutes.GET("", middleware.RequirePermission("menu", "view"), menuHandler.List)
		menuRoutes.GET("/:id", middleware.RequirePermission("menu", "view"), menuHandler.GetByID)
		menuRoutes.POST("", middleware.RequirePermission("menu", "create"), menuHandler.Create)
		menuRoutes.PUT("/:id", middleware.RequirePermission("menu", "update"), menuHandler.Update)
		menuRoutes.DELETE("/:id", middleware.RequirePermission("menu", "delete"), menuHandler.Delete)
		menuRoutes.PUT("/reorder", middleware.RequirePermission("menu", "update"), menuHandler.Reorder)
	}
}

// SetupOrderRoutes sets up staff-side order management, including manual
// third-party entry.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler, thirdPartyHandler *handlers.ThirdPartyHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	{
		orderRoutes.GET("", middleware.RequirePermission("orders", "view"), orderHandler.List)
		orderRoutes.GET("/:id", middleware.RequirePermission("orders", "view"), orderHandler.GetByID)
		orderRoutes.POST("", middleware.RequirePermission("orders", "create"), orderHandler.Create)
		orderRoutes.POST("/third-party/:platform", middleware.RequirePermission("orders", "create"), thirdPartyHandler.CreateManual)
		orderRoutes.PATCH("/:id/status", middleware.RequirePermission("orders", "update"), orderHandler.UpdateStatus)
		orderRoutes.PUT("/:id", middleware.RequirePermission("orders", "update"), orderHandler.Update)
		orderRoutes.POST("/:id/print-kot", middleware.RequirePermission("orders", "update"), orderHandler.PrintKOT)
		orderRoutes.DELETE("/:id", middleware.RequirePermission("orders", "delete"), orderHandler.Delete)
		orderRoutes.POST("/bulk-delete", middleware.RequirePermission("orders", "delete"), orderHandler.DeleteMany)
	}
}

// SetupStaffRoutes sets up staff account management. Writes are owner-only;
// managers can view the roster.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/staff")
	{
		staffRoutes.GET("", middleware.RequirePermission("staff", "view"), staffHandler.List)
		staffRoutes.GET("/:id", middleware.RequirePermission("staff", "view"), staffHandler.GetByID)
		staffRoutes.POST("", middleware.RequirePermission("staff", "create"), staffHandler.Create)
		staffRoutes.PUT("/:id", middleware.RequirePermission("staff", "update"), staffHandler.Update)
		staffRoutes.DELETE("/:id", middleware.RequirePermission("staff", "delete"), staffHandler.Delete)
	}
}

// SetupDiscountRoutes sets up discount management.
func SetupDiscountRoutes(authenticatedGroup *gin.RouterGroup, discountHandler *handlers.DiscountHandler) {
	discountRoutes := authenticatedGroup.Group("/discounts")
	{
		discountRoutes.GET("", middleware.RequirePermission("discounts", "view"), discountHandler.List)
		discountRoutes.GET("/:id", middleware.RequirePermission("discounts", "view"), discountHandler.GetByID)
		discountRoutes.GET("/:id/usage", middleware.RequirePermission("discounts", "view"), discountHandler.ListUsage)
		discountRoutes.POST("", middleware.RequirePermission("discounts", "create"), discountHandler.Create)
		discountRoutes.PUT("/:id", middleware.RequirePermission("discounts", "update"), discountHandler.Update)
		discountRoutes.DELETE("/:id", middleware.RequirePermission("discounts", "delete"), discountHandler.Delete)
	}
}

// SetupFeedbackRoutes sets up staff-side feedback review.
func SetupFeedbackRoutes(authenticatedGroup *gin.RouterGroup, feedbackHandler *handlers.FeedbackHandler) {
	feedbackRoutes := authenticatedGroup.Group("/feedback")
	{
		feedbackRoutes.GET("", middleware.RequirePermission("feedback", "view"), feedbackHandler.List)
		feedbackRoutes.GET("/stats", middleware.RequirePermission("feedback", "view"), feedbackHandler.Stats)
		feedbackRoutes.POST("/:id/respond", middleware.RequirePermission("feedback", "respond"), feedbackHandler.Respond)
	}
}

// SetupAnalyticsRoutes sets up the analytics summary route.
func SetupAnalyticsRoutes(authenticatedGroup *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler) {
	analyticsRoutes := authenticatedGroup.Group("/analytics")
	{
		analyticsRoutes.GET("/summary", middleware.RequirePermission("analytics", "view"), analyticsHandler.Summary)
	}
}

// SetupPrinterRoutes sets up printer and bill settings routes.
func SetupPrinterRoutes(authenticatedGroup *gin.RouterGroup, printerHandler *handlers.PrinterHandler) {
	printerRoutes := authenticatedGroup.Group("/settings/printer")
	{
		printerRoutes.GET("", middleware.RequirePermission("settings", "view"), printerHandler.Get)
		printerRoutes.PUT("", middleware.RequirePermission("settings", "update"), printerHandler.Update)
	}
}

// SetupAdminRoutes sets up the platform admin surface.
func SetupAdminRoutes(adminGroup *gin.RouterGroup, restaurantHandler *handlers.RestaurantHandler) {
	adminGroup.POST("/restaurants", restaurantHandler.AdminCreate)
	adminGroup.GET("/restaurants", restaurantHandler.AdminList)
	adminGroup.PUT("/restaurants/:id/features", restaurantHandler.AdminUpdateFeatures)
}
