package router

import (
	"database/sql"

	"qr_dine_backend/internal/handlers"
	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/realtime"
	"qr_dine_backend/internal/repositories"
	"qr_dine_backend/internal/services"
	"qr_dine_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminCredentials carries the env-configured platform admin login.
type AdminCredentials struct {
	Username string
	Password string
}

// Setup wires repositories, services and handlers and mounts all routes.
func Setup(engine *gin.Engine, db *sql.DB, hub *realtime.Hub, admin AdminCredentials) {
	// Repositories
	restaurantRepo := repositories.NewRestaurantRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	discountRepo := repositories.NewDiscountRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)
	printerRepo := repositories.NewPrinterRepository(db)

	// Services
	restaurantService := services.NewRestaurantService(restaurantRepo, db)
	menuService := services.NewMenuService(menuRepo, db)
	staffService := services.NewStaffService(staffRepo, db)
	discountService := services.NewDiscountService(discountRepo, db)
	orderService := services.NewOrderService(orderRepo, menuRepo, discountRepo, db, hub)
	feedbackService := services.NewFeedbackService(feedbackRepo, orderRepo, db, hub)
	analyticsService := services.NewAnalyticsService(analyticsRepo, feedbackRepo)
	printerService := services.NewPrinterService(printerRepo, db)
	thirdPartyService := services.NewThirdPartyService(orderService)

	// Handlers
	authHandler := handlers.NewAuthHandler(restaurantService, staffService, admin.Username, admin.Password)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, menuService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	staffHandler := handlers.NewStaffHandler(staffService)
	discountHandler := handlers.NewDiscountHandler(discountService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	printerHandler := handlers.NewPrinterHandler(printerService)
	thirdPartyHandler := handlers.NewThirdPartyHandler(thirdPartyService)

	engine.GET("/ws", hub.ServeWS)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler, staffService)
	SetupPublicRoutes(apiV1, restaurantHandler, orderHandler, discountHandler, feedbackHandler)
	SetupWebhookRoutes(apiV1, thirdPartyHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(staffService))
	{
		SetupRestaurantRoutes(authenticated, restaurantHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupOrderRoutes(authenticated, orderHandler, thirdPartyHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupDiscountRoutes(authenticated, discountHandler)
		SetupFeedbackRoutes(authenticated, feedbackHandler)
		SetupAnalyticsRoutes(authenticated, analyticsHandler)
		SetupPrinterRoutes(authenticated, printerHandler)
	}

	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(staffService), middleware.RequireKind(utils.TokenKindAdmin))
	{
		SetupAdminRoutes(adminGroup, restaurantHandler)
	}
}
