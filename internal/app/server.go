// internal/app/server.go
package app

import (
	"fmt"
	"log"

	"cncquote-service/internal/config"
	"cncquote-service/internal/db"
	addressHandler "cncquote-service/internal/handlers/address"
	authHandler "cncquote-service/internal/handlers/auth"
	cartHandler "cncquote-service/internal/handlers/cart"
	fileHandler "cncquote-service/internal/handlers/file"
	logisticsHandler "cncquote-service/internal/handlers/logistics"
	orderHandler "cncquote-service/internal/handlers/order"
	partHandler "cncquote-service/internal/handlers/part"
	"cncquote-service/internal/middleware"
	"cncquote-service/internal/pkg/session"
	"cncquote-service/internal/repository/postgres"
	addressService "cncquote-service/internal/service/address"
	authService "cncquote-service/internal/service/auth"
	cartService "cncquote-service/internal/service/cart"
	"cncquote-service/internal/service/cnc"
	fileService "cncquote-service/internal/service/file"
	logisticsService "cncquote-service/internal/service/logistics"
	orderService "cncquote-service/internal/service/order"
	"cncquote-service/internal/service/payment"
	partService "cncquote-service/internal/service/part"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Sessions -----
	store := session.NewRedisStore(redisClient, logger)
	sessions := session.New(store, session.Config{
		TTL:          s.cfg.SessionTTL,
		CookieDomain: s.cfg.SessionDomain,
		CookieSecure: s.cfg.SessionSecure,
		SameSite:     s.cfg.SessionSameSite,
	}, logger)

	// ----- Vendor clients -----
	cncClient := cnc.NewClient(s.cfg.CNCBaseURL, s.cfg.CNCCookie, logger)
	viewerClient := cnc.NewViewerClient(s.cfg.ViewerUploadURL, s.cfg.ViewerPreviewURL, logger)
	logisticsClient := logisticsService.NewClient(logisticsService.ClientConfig{
		APIBase:   s.cfg.LogisticsAPIBase,
		UCBase:    s.cfg.LogisticsUCBase,
		OMSBase:   s.cfg.LogisticsOMSBase,
		ClientID:  s.cfg.LogisticsClientID,
		Secret:    s.cfg.LogisticsSecret,
		SourceKey: s.cfg.LogisticsSourceKey,
	}, logger)
	rateClient := logisticsService.NewRateClient(s.cfg.FXAPIBase, s.cfg.FXAppID, s.cfg.FXFallbackRate, logger)
	paypalClient := payment.NewPayPalClient(s.cfg.PayPalAPIBase, s.cfg.PayPalClientID, s.cfg.PayPalClientSecret, logger)

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	fileRepo := postgres.NewFileRepository(pool)
	partRepo := postgres.NewPartDetailsRepository(pool)
	cartRepo := postgres.NewCartItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)

	// ----- Services -----
	authSvc := authService.NewAuthService(userRepo, logger)
	fileSvc := fileService.NewFileService(fileRepo, cncClient, viewerClient, s.cfg.UploadDir, logger)
	partSvc := partService.NewPartService(partRepo, logger)
	cartSvc := cartService.NewCartService(partRepo, cartRepo, fileRepo, logger)
	orderSvc := orderService.NewOrderService(orderRepo, partRepo, cncClient, logger)
	logisticsSvc := logisticsService.NewService(logisticsClient, cncClient, rateClient,
		s.cfg.CNCFreightRatio, s.cfg.LogisticsFreightRatio, logger)
	addressSvc := addressService.NewAddressService(addressRepo, logger)

	// ----- Handlers -----
	h := &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authSvc),
		FileHandler:      fileHandler.NewFileHandler(fileSvc),
		PartHandler:      partHandler.NewPartHandler(partSvc),
		CartHandler:      cartHandler.NewCartHandler(cartSvc),
		OrderHandler:     orderHandler.NewOrderHandler(orderSvc, paypalClient),
		LogisticsHandler: logisticsHandler.NewLogisticsHandler(logisticsSvc),
		AddressHandler:   addressHandler.NewAddressHandler(addressSvc),
	}

	// ----- Middleware & routes -----
	s.engine.Use(middleware.RecoveryMiddleware(logger))
	s.engine.Use(middleware.LoggingMiddleware(logger))
	s.engine.Use(middleware.CORSMiddleware(s.cfg.FrontendURL))
	s.engine.Use(middleware.Session(sessions))

	SetupRouter(s.engine, h)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
