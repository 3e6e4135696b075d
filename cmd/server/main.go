// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shopfront/ecommerce-backend/internal/cache"
	"github.com/shopfront/ecommerce-backend/internal/config"
	"github.com/shopfront/ecommerce-backend/internal/database"
	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/repository"
	"github.com/shopfront/ecommerce-backend/internal/router"
	"github.com/shopfront/ecommerce-backend/internal/services"
	"github.com/shopfront/ecommerce-backend/internal/telemetry"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

type stores struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.Fatalf("Failed to initialize i18n: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	shutdownTracing, err := telemetry.Initialize(ctx, cfg.Telemetry, cfg.Environment)
	if err != nil {
		logrus.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("Failed to flush traces")
		}
	}()

	repos, closeStore, err := openStores(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	if cfg.Redis.Enabled {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			logrus.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer func(client *redis.Client) {
			if err := client.Close(); err != nil {
				logrus.WithError(err).Warn("Failed to close Redis client")
			}
		}(client)
		repos.products = cache.NewProductRepository(repos.products, client, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		logrus.Info("Product cache enabled")
	}

	if err := database.SeedAdmin(ctx, repos.users, cfg.Admin); err != nil {
		logrus.Fatalf("Failed to seed admin user: %v", err)
	}

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage service: %v", err)
	}
	inventoryService := services.NewInventoryService(repos.products)
	invoiceService := services.NewInvoiceService(cfg.Invoice.Currency)

	r := router.Initialize(ctx, cfg, router.Services{
		Auth:     services.NewAuthService(repos.users, cfg),
		Users:    services.NewUserService(repos.users),
		Products: services.NewProductService(repos.products),
		Orders:   services.NewOrderService(repos.orders, repos.products, inventoryService, invoiceService, storageService),
		Accounts: repos.users,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      otelhttp.NewHandler(r, cfg.Telemetry.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logrus.Info("Server exited")
}

// openStores picks the in-memory store or PostgreSQL from DB_DRIVER.
func openStores(cfg *config.Config) (*stores, func(), error) {
	if cfg.Database.InMemory() {
		logrus.Warn("Using in-memory store; data is lost on restart")
		mem := repository.NewMemoryStore()
		return &stores{
			users:    mem.Users(),
			products: mem.Products(),
			orders:   mem.Orders(),
		}, func() {}, nil
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &stores{
		users:    repository.NewUserRepository(db),
		products: repository.NewProductRepository(db),
		orders:   repository.NewOrderRepository(db),
	}, func() { database.Close(db) }, nil
}
