package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/logger"
	"storefront-service/repository"
	"storefront-service/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Initialize(cfg.Env)
	zlog := logger.Log
	defer zlog.Sync()

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zlog.Fatal("mongodb connect failed", zap.Error(err))
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		zlog.Fatal("index creation failed", zap.Error(err))
	}
	cancel()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zlog.Fatal("redis connect failed", zap.Error(err))
	}
	defer redisClient.Close()

	uploader, err := services.NewS3ProofUploader(context.Background(), services.S3Options{
		Bucket:   cfg.S3Bucket,
		Region:   cfg.S3Region,
		Endpoint: cfg.S3Endpoint,
	})
	if err != nil {
		zlog.Fatal("s3 uploader init failed", zap.Error(err))
	}

	var notifier services.OrderNotifier
	if cfg.OrderTopicARN != "" {
		sn, err := services.NewSNSOrderNotifier(context.Background(), cfg.OrderTopicARN, zlog)
		if err != nil {
			zlog.Fatal("sns notifier init failed", zap.Error(err))
		}
		notifier = sn
	}

	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)

	resolver := services.NewStoreResolver(storeRepo)
	cartService := services.NewCartService(productRepo, cartRepo, zlog)
	checkoutService := services.NewCheckoutService(orderRepo, cartRepo, uploader, notifier, zlog)

	storefront := controllers.NewStorefrontController(resolver, productRepo, zlog)
	ctrl := appControllers{
		storefront: storefront,
		cart:       controllers.NewCartController(storefront, cartService, zlog),
		checkout:   controllers.NewCheckoutController(storefront, cartService, checkoutService, zlog),
		dashboard:  controllers.NewDashboardController(storeRepo, productRepo, orderRepo, zlog),
		admin:      controllers.NewAdminController(storeRepo, zlog),
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(cfg, ctrl, zlog),
	}

	go func() {
		zlog.Info("storefront service listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info("shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("shutdown error", zap.Error(err))
	}
	zlog.Info("server shutdown complete")
}
