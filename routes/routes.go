package routes

import (
	"time"

	"bistro-backend/cache"
	"bistro-backend/handlers"
	"bistro-backend/middleware"
	"bistro-backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storageClient storage.Client, statusCache *cache.Cache) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db, Storage: storageClient}
	dealHandler := &handlers.DealHandler{DB: db, Storage: storageClient}
	couponHandler := &handlers.CouponHandler{DB: db}
	riderHandler := &handlers.RiderHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db}
	deliveryHandler := &handlers.DeliveryHandler{DB: db}
	shopHandler := &handlers.ShopHandler{DB: db, Cache: statusCache}
	scheduleHandler := &handlers.ScheduleHandler{DB: db, Cache: statusCache}

	// Login attempts are rate limited per client IP
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)
		api.POST("/auth/refresh", authLimiter.Middleware(), authHandler.RefreshTokenHandler)

		// Storefront
		api.GET("/shop", shopHandler.GetShop)
		api.GET("/shop/status", shopHandler.GetShopStatus)
		api.GET("/schedule", scheduleHandler.GetSchedule)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/deals", dealHandler.GetDeals)
		api.GET("/deals/:id", dealHandler.GetDeal)

		api.POST("/orders", orderHandler.CreateOrder)
		api.POST("/coupons/validate", couponHandler.ValidateCoupon)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Account
		admin.GET("/profile", authHandler.GetProfile)
		admin.PUT("/profile", authHandler.UpdateProfile)
		admin.PUT("/profile/password", authHandler.ChangePassword)

		// Catalog management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.POST("/deals", dealHandler.CreateDeal)
		admin.PUT("/deals/:id", dealHandler.UpdateDeal)
		admin.DELETE("/deals/:id", dealHandler.DeleteDeal)

		// Coupons
		admin.GET("/coupons", couponHandler.GetCoupons)
		admin.GET("/coupons/:id", couponHandler.GetCoupon)
		admin.POST("/coupons", couponHandler.CreateCoupon)
		admin.PUT("/coupons/:id", couponHandler.UpdateCoupon)
		admin.DELETE("/coupons/:id", couponHandler.DeleteCoupon)

		// Riders
		admin.GET("/riders", riderHandler.GetRiders)
		admin.GET("/riders/:id", riderHandler.GetRider)
		admin.POST("/riders", riderHandler.CreateRider)
		admin.PUT("/riders/:id", riderHandler.UpdateRider)
		admin.DELETE("/riders/:id", riderHandler.DeleteRider)

		// Orders
		admin.GET("/orders", orderHandler.ListOrders)
		admin.GET("/orders/:id", orderHandler.GetOrder)
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		admin.PUT("/orders/:id/rider", orderHandler.AssignRider)

		// Shop settings
		admin.PUT("/shop", shopHandler.UpdateShop)
		admin.PUT("/shop/override", shopHandler.UpdateOverride)
		admin.GET("/delivery-settings", deliveryHandler.GetDeliverySettings)
		admin.PUT("/delivery-settings", deliveryHandler.UpdateDeliverySettings)

		// Opening hours
		admin.GET("/schedule", scheduleHandler.GetSchedule)
		admin.PUT("/schedule", scheduleHandler.UpdateSchedule)
		admin.GET("/schedule/warnings", scheduleHandler.GetWarnings)
		admin.GET("/schedule/overview", scheduleHandler.GetOverview)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
