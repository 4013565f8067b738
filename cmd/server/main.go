package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/controller"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/db"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/router"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/scheduler"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/storage"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	appredis "github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/redis"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/util"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting fodz backend server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.SeedAdmin(&cfg.Admin); err != nil {
		logger.Warn("Failed to seed admin account", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := appredis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to connect to redis", err)
	}
	defer appredis.Close()

	store, err := storage.New(&cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage", err)
	}

	database := db.GetDB()

	// Repositories
	accountRepo := repository.NewAccountRepository(database)
	otpRepo := repository.NewOTPRepository(database)
	restaurantRepo := repository.NewRestaurantRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	productRepo := repository.NewProductRepository(database)
	addonRepo := repository.NewAddonRepository(database)
	comboRepo := repository.NewComboRepository(database)
	offerRepo := repository.NewOfferRepository(database)
	favoriteRepo := repository.NewFavoriteRepository(database)
	rateRepo := repository.NewRateRepository(database)
	homeAdRepo := repository.NewHomeAdRepository(database)
	addressRepo := repository.NewAddressRepository(database)

	// Services
	tokenStore := appredis.Store{}
	authService := service.NewAuthService(
		database,
		accountRepo,
		otpRepo,
		util.NewSENSSender(cfg.SMS),
		tokenStore,
		tokenStore,
		service.AuthSettings{
			JWTSecret:     cfg.JWT.Secret,
			AccessExpiry:  cfg.JWT.AccessTokenExpiry,
			RefreshExpiry: cfg.JWT.RefreshTokenExpiry,
			OTP:           cfg.OTP,
		},
	)
	categoryService := service.NewCategoryService(database, categoryRepo, productRepo)
	productService := service.NewProductService(database, productRepo, categoryRepo, addonRepo, comboRepo, offerRepo, rateRepo, favoriteRepo)
	comboService := service.NewComboService(database, comboRepo, productRepo)
	addonService := service.NewAddonService(database, addonRepo)
	offerService := service.NewOfferService(offerRepo, productRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo)
	rateService := service.NewRateService(rateRepo, productRepo)
	homeAdService := service.NewHomeAdService(homeAdRepo, restaurantRepo)
	restaurantService := service.NewRestaurantService(restaurantRepo)
	addressService := service.NewAddressService(addressRepo)

	// Controllers
	uploader := controller.NewUploader(store, cfg.Storage.MaxUploadSize)
	controllers := router.Controllers{
		Auth:       controller.NewAuthController(authService, uploader),
		Category:   controller.NewCategoryController(categoryService, uploader),
		Product:    controller.NewProductController(productService, offerService, uploader),
		Combo:      controller.NewComboController(comboService, uploader),
		Addon:      controller.NewAddonController(addonService),
		Offer:      controller.NewOfferController(offerService),
		Favorite:   controller.NewFavoriteController(favoriteService),
		Rate:       controller.NewRateController(rateService),
		HomeAd:     controller.NewHomeAdController(homeAdService, uploader),
		Restaurant: controller.NewRestaurantController(restaurantService),
		Address:    controller.NewAddressController(addressService),
		Upload:     controller.NewUploadController(store),
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, tokenStore)
	engine := router.NewRouter(controllers, authMiddleware, cfg).Setup()

	offerScheduler := scheduler.NewOfferExpiryScheduler(offerService, cfg.Scheduler.OfferExpirySpec)
	if err := offerScheduler.Start(); err != nil {
		logger.Fatal("Failed to start offer expiry scheduler", err)
	}
	defer offerScheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
