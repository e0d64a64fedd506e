package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "golfcart-rental-backend/internal/api/http"
	"golfcart-rental-backend/internal/config"
	"golfcart-rental-backend/internal/logger"
	"golfcart-rental-backend/internal/ratelimit"
	"golfcart-rental-backend/internal/repository/postgres"
	"golfcart-rental-backend/internal/security"
	"golfcart-rental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Golf Cart Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	auditSvc := service.NewAuditService(store.AuditRepository)

	availabilitySvc := service.NewAvailabilityService(
		store.InventoryRepository,
		store.BlockRepository,
		store.BookingRepository,
	)

	limiter := ratelimit.New(cfg.RateLimit.BookingsPerHour)

	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.PricingRepository,
		availabilitySvc,
		limiter,
		auditSvc,
		emailSvc,
		int32(cfg.Booking.MaxQuantity),
	)

	adminSvc := service.NewAdminService(
		store.BlockRepository,
		store.PricingRepository,
		store.InventoryRepository,
		auditSvc,
	)

	// Initialize HTTP handlers and router
	bookingHandler := httpapi.NewBookingHandler(bookingSvc, availabilitySvc)
	adminHandler := httpapi.NewAdminHandler(bookingSvc, adminSvc)
	router := httpapi.NewRouter(bookingHandler, adminHandler, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
