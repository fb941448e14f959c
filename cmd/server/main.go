package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/config"
	"github.com/stayserve/marketplace-backend/internal/database"
	"github.com/stayserve/marketplace-backend/internal/handlers"
	"github.com/stayserve/marketplace-backend/internal/middleware"
	"github.com/stayserve/marketplace-backend/internal/services"
	"github.com/stayserve/marketplace-backend/pkg/jwt"
	"github.com/stayserve/marketplace-backend/pkg/notify"
	"github.com/stayserve/marketplace-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting StayServe Marketplace Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	hotelRepo := database.NewHotelRepository(db)
	providerRepo := database.NewProviderRepository(db)
	serviceRepo := database.NewServiceRepository(db)
	policyRepo := database.NewMarkupPolicyRepository(db)
	bookingRepo := database.NewBookingRepository(db)

	// Initialize notification gateways
	var emailGateway notify.EmailGateway = notify.NewSMTPEmailGateway(notify.SMTPConfig{
		Host:        cfg.Notify.SMTPHost,
		Port:        cfg.Notify.SMTPPort,
		Username:    cfg.Notify.SMTPUser,
		Password:    cfg.Notify.SMTPPass,
		FromAddress: cfg.Notify.FromAddress,
	})
	var messageGateway notify.MessageGateway = notify.NewHTTPMessageGateway(notify.HTTPMessageConfig{
		APIURL: cfg.Notify.MessageURL,
		APIKey: cfg.Notify.MessageKey,
	})
	if cfg.Notify.Mode != "production" {
		logger.Info("Notification channels in dev mode (nothing will be sent)")
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	phoneValidator := validator.NewPhoneValidator()
	clock := services.NewRealClock()

	notificationService := services.NewNotificationService(
		emailGateway,
		messageGateway,
		cfg.Notify.Mode,
		cfg.Notify.QueueSize,
		logger,
	)
	notificationService.Start(cfg.Notify.Workers)

	ratingService := services.NewRatingService(bookingRepo, providerRepo, logger)

	bookingService := services.NewBookingService(
		bookingRepo,
		serviceRepo,
		providerRepo,
		hotelRepo,
		policyRepo,
		ratingService,
		notificationService,
		services.BookingConfig{
			DefaultCurrency:   cfg.Booking.DefaultCurrency,
			CancelWindowHours: cfg.Booking.CancelWindowHours,
			PlatformFeePct:    cfg.Booking.PlatformFeePct,
			PlatformMarkupPct: cfg.Booking.PlatformDefaultPct,
			FallbackTime:      cfg.Booking.FallbackTimeOfDay,
			Location:          time.Local,
		},
		clock,
		logger,
	)

	marketplaceService := services.NewMarketplaceService(hotelRepo, providerRepo, serviceRepo, policyRepo, clock, logger)
	authService := services.NewAuthService(hotelRepo, jwtService, cfg.JWT.AccessTokenExpiry, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, phoneValidator, logger)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Hotel catalog browsing (public)
		v1.GET("/hotels/:hotel_id/services", marketplaceHandler.GetHotelCatalog)

		// Booking routes (guest)
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware(jwtService))
		{
			bookings.POST("", middleware.RequireRole(middleware.RoleGuest), bookingHandler.CreateBooking)
			bookings.GET("", middleware.RequireRole(middleware.RoleGuest), bookingHandler.ListMyBookings)
			bookings.GET("/:booking_id", middleware.RequireRole(middleware.RoleGuest), bookingHandler.GetBooking)
			bookings.POST("/:booking_id/cancel", middleware.RequireRole(middleware.RoleGuest), bookingHandler.CancelBooking)
			bookings.POST("/:booking_id/review", middleware.RequireRole(middleware.RoleGuest), bookingHandler.AddReview)

			// Payment confirmation arrives from the payment callback
			// relay, authenticated but not role-bound
			bookings.POST("/:booking_id/confirm-payment", bookingHandler.ConfirmPayment)

			bookings.POST("/:booking_id/complete", middleware.RequireRole(middleware.RoleProvider), bookingHandler.CompleteBooking)
		}

		// Hotel admin routes
		hotel := v1.Group("/hotel")
		hotel.Use(middleware.AuthMiddleware(jwtService))
		hotel.Use(middleware.RequireRole(middleware.RoleHotelAdmin))
		{
			hotel.GET("/markup-policy", marketplaceHandler.GetMarkupPolicy)
			hotel.PUT("/markup-policy", marketplaceHandler.UpsertMarkupPolicy)
			hotel.PUT("/providers/:provider_id/markup", marketplaceHandler.SetProviderMarkup)
			hotel.POST("/providers", marketplaceHandler.RegisterProvider)
			hotel.GET("/providers", marketplaceHandler.ListProviders)
			hotel.GET("/bookings", bookingHandler.ListHotelBookings)
		}

		// Provider routes
		provider := v1.Group("/provider")
		provider.Use(middleware.AuthMiddleware(jwtService))
		provider.Use(middleware.RequireRole(middleware.RoleProvider))
		{
			provider.POST("/services", marketplaceHandler.ListService)
			provider.GET("/services", marketplaceHandler.ListMyServices)
			provider.PUT("/services/:service_id", marketplaceHandler.UpdateService)
			provider.DELETE("/services/:service_id", marketplaceHandler.DeactivateService)
			provider.GET("/bookings", bookingHandler.ListProviderBookings)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	notificationService.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
			fields["roles"] = userCtx.Roles
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
