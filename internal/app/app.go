package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"findahand_backend/internal/auth"
	"findahand_backend/internal/config"
	"findahand_backend/internal/database"
	"findahand_backend/internal/handlers"
	"findahand_backend/internal/imageprocessor"
	"findahand_backend/internal/logger"
	"findahand_backend/internal/middleware"
	"findahand_backend/internal/repositories"
	"findahand_backend/internal/routes"
	"findahand_backend/internal/services"
	"findahand_backend/internal/storage"
	"findahand_backend/internal/validator"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("")
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, handlers and middleware into a
// ready gin engine. Tests call it directly with their own config and
// database handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	serviceContainer := initializeServices(cfg, tokens, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(tokens), cfg)

	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager, storageInstance storage.Storage) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	handymanRepo := repositories.NewHandymanRepository()
	bookingRepo := repositories.NewBookingRepository()
	reviewRepo := repositories.NewReviewRepository()

	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)
	uploadService := services.NewUploadService(storageInstance, processor, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)

	return &services.ServiceContainer{
		UserService:     services.NewUserService(userRepo, tokens),
		HandymanService: services.NewHandymanService(handymanRepo, tokens),
		BookingService:  services.NewBookingService(bookingRepo, handymanRepo),
		ReviewService:   services.NewReviewService(reviewRepo, handymanRepo, userRepo),
		UploadService:   uploadService,
	}
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		UserHandler:     handlers.NewUserHandler(baseHandler, sc.UserService),
		HandymanHandler: handlers.NewHandymanHandler(baseHandler, sc.HandymanService, sc.BookingService, sc.UploadService),
		BookingHandler:  handlers.NewBookingHandler(baseHandler, sc.BookingService),
		ReviewHandler:   handlers.NewReviewHandler(baseHandler, sc.ReviewService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Debug("CORS configuration",
		"origins", cfg.CORS.Origins,
		"wildcard_suffixes", cfg.CORS.WildcardSuffixes,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.DBMiddleware(db))
	return router
}
