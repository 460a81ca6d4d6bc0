// internal/app/router.go
package app

import (
	addressHandler "cncquote-service/internal/handlers/address"
	authHandler "cncquote-service/internal/handlers/auth"
	cartHandler "cncquote-service/internal/handlers/cart"
	fileHandler "cncquote-service/internal/handlers/file"
	logisticsHandler "cncquote-service/internal/handlers/logistics"
	orderHandler "cncquote-service/internal/handlers/order"
	partHandler "cncquote-service/internal/handlers/part"
	"cncquote-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	FileHandler      *fileHandler.FileHandler
	PartHandler      *partHandler.PartHandler
	CartHandler      *cartHandler.CartHandler
	OrderHandler     *orderHandler.OrderHandler
	LogisticsHandler *logisticsHandler.LogisticsHandler
	AddressHandler   *addressHandler.AddressHandler
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.Register)
		auth.POST("/login", h.AuthHandler.Login)
		auth.POST("/logout", h.AuthHandler.Logout)
	}

	authProtected := api.Group("/auth")
	authProtected.Use(middleware.RequireAuth())
	{
		authProtected.GET("/check_login", h.AuthHandler.CheckLogin)
		authProtected.GET("/check-permission", h.AuthHandler.CheckPermission)
	}

	// ==================== Files ====================
	files := api.Group("/file")
	files.Use(middleware.RequireAuth())
	{
		files.GET("/history", h.FileHandler.History)
		files.DELETE("/history/:file_id", h.FileHandler.DeleteHistory)
		files.POST("/uploadDrawFile", h.FileHandler.UploadDrawFile)
		files.POST("/analyze_model", h.FileHandler.AnalyzeModel)
		files.GET("/get_analysis_result", h.FileHandler.GetAnalysisResult)
		files.GET("/get_file_info", h.FileHandler.GetFileInfo)
		files.POST("/update_product_model", h.FileHandler.UpdateProductModel)
	}

	// Uploads write into per-customer storage, so the customer code
	// cookie is additionally required.
	filesCustomer := api.Group("/file")
	filesCustomer.Use(middleware.RequireAuth(), middleware.RequireCustomer())
	{
		filesCustomer.POST("/upload", h.FileHandler.Upload)
	}

	// ==================== Part Details ====================
	parts := api.Group("/part_details")
	parts.Use(middleware.RequireAuth())
	{
		parts.POST("", h.PartHandler.Create)
		parts.GET("/:id", h.PartHandler.Get)
		parts.GET("", h.PartHandler.ListByFile)
		parts.PUT("/:id", h.PartHandler.Update)
		parts.DELETE("/:id", h.PartHandler.Delete)
	}

	// ==================== Cart ====================
	cart := api.Group("/cart")
	cart.Use(middleware.RequireAuth(), middleware.RequireCustomer())
	{
		cart.POST("/add_to_cart", h.CartHandler.AddToCart)
		cart.GET("/get_cart", h.CartHandler.GetCart)
		cart.DELETE("/delete_cart_item/:id", h.CartHandler.DeleteItem)
	}

	// ==================== Orders & Quoting ====================
	orders := api.Group("/order")
	orders.Use(middleware.RequireAuth(), middleware.RequireCustomer())
	{
		orders.POST("/price", h.OrderHandler.Price)
		orders.POST("", h.OrderHandler.Create)
		orders.GET("", h.OrderHandler.List)
		orders.GET("/:id", h.OrderHandler.Get)
		orders.PUT("/:id/status", h.OrderHandler.UpdateStatus)
		orders.POST("/payment_token", h.OrderHandler.PaymentToken)
	}

	// ==================== Logistics ====================
	logistics := api.Group("/logistics")
	logistics.Use(middleware.RequireAuth())
	{
		logistics.GET("/get_country", h.LogisticsHandler.GetCountry)
		logistics.GET("/get_region1", h.LogisticsHandler.GetRegion1)
		logistics.GET("/get_region2", h.LogisticsHandler.GetRegion2)
		logistics.GET("/get_postcode", h.LogisticsHandler.GetPostcode)
		logistics.GET("/track_shipment/:waybill", h.LogisticsHandler.TrackShipment)
	}

	logisticsCustomer := api.Group("/logistics")
	logisticsCustomer.Use(middleware.RequireAuth(), middleware.RequireCustomer())
	{
		logisticsCustomer.POST("/freightEst", h.LogisticsHandler.FreightEst)
	}

	// ==================== Addresses ====================
	addresses := api.Group("/address")
	addresses.Use(middleware.RequireAuth())
	{
		addresses.POST("/add", h.AddressHandler.Add)
		addresses.GET("/list", h.AddressHandler.List)
		addresses.DELETE("/:id", h.AddressHandler.Delete)
		addresses.POST("/set_default", h.AddressHandler.SetDefault)
		addresses.GET("/get_default", h.AddressHandler.GetDefault)
	}
}
