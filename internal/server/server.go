package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/JSebastianB25/Web-Project/internal/config"
	"github.com/JSebastianB25/Web-Project/internal/mailer"
	custommiddleware "github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/pdf"
	"github.com/JSebastianB25/Web-Project/internal/repository"
	"github.com/JSebastianB25/Web-Project/internal/service"
	"github.com/JSebastianB25/Web-Project/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Redis backs login rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Initialize repositories
	supplierRepo := repository.NewSupplierRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	reportRepo := repository.NewReportRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg.JWT.Secret)
	userService := service.NewUserService(userRepo)
	salesService := service.NewSalesService(invoiceRepo, productRepo)
	reportService := service.NewReportService(reportRepo)
	invoiceMailer := service.NewInvoiceMailer(
		invoiceRepo,
		pdf.NewRenderer(cfg.Company),
		mailer.NewMailer(cfg.SMTP),
		cfg.Company.Name,
	)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	catalogHandler := transport.NewCatalogHandler(supplierRepo, brandRepo, categoryRepo, paymentMethodRepo, logger)
	clientHandler := transport.NewClientHandler(clientRepo, logger)
	productHandler := transport.NewProductHandler(productRepo, logger)
	invoiceHandler := transport.NewInvoiceHandler(salesService, invoiceMailer, logger)
	saleItemHandler := transport.NewSaleItemHandler(salesService, logger)
	reportHandler := transport.NewReportHandler(reportService, logger)
	userHandler := transport.NewUserHandler(userService, logger)
	roleHandler := transport.NewRoleHandler(roleRepo, logger)
	permissionHandler := transport.NewPermissionHandler(permissionRepo, logger)

	// Public routes: token issuance is rate limited per client IP
	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 10,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit:login",
		}, logger))
		authHandler.RegisterPublicRoutes(r)
	})

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger))

		authHandler.RegisterProtectedRoutes(r)
		catalogHandler.RegisterRoutes(r)
		clientHandler.RegisterRoutes(r)
		productHandler.RegisterRoutes(r)
		invoiceHandler.RegisterRoutes(r)
		saleItemHandler.RegisterRoutes(r)
		reportHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
		roleHandler.RegisterRoutes(r)
		permissionHandler.RegisterRoutes(r)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
