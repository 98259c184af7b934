// cmd/api/main.go
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/domain/cart"
	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/domain/order"
	"github.com/alibix/storefront-api/internal/domain/session"
	"github.com/alibix/storefront-api/internal/domain/wishlist"
	"github.com/alibix/storefront-api/internal/infrastructure/database/postgres"
	"github.com/alibix/storefront-api/internal/infrastructure/database/redis"
	httpserver "github.com/alibix/storefront-api/internal/interfaces/http"
	"github.com/alibix/storefront-api/internal/interfaces/http/routes"
	"github.com/alibix/storefront-api/internal/pkg/auth"
	"github.com/alibix/storefront-api/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"backend":     cfg.Store.Backend,
	}).Infof("Starting %s", cfg.App.Name)

	var (
		productRepo  catalog.ProductRepository
		categoryRepo catalog.CategoryRepository
		orderRepo    order.Repository
		cartStore    cart.Store
		wishStore    wishlist.Store
		sessionStore session.Store
		redisClient  *goredis.Client
		health       = map[string]httpserver.HealthChecker{}
	)

	switch cfg.Store.Backend {
	case "postgres":
		db, err := postgres.NewConnection(cfg)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		migration := postgres.NewMigration(db.DB)
		if err := migration.RunAutoMigrations(); err != nil {
			logger.Fatalf("Database migration failed: %v", err)
		}
		if cfg.IsDevelopment() {
			if err := postgres.SeedCatalog(context.Background(), db.DB); err != nil {
				logger.Warnf("Catalog seeding failed: %v", err)
			}
		}

		rdb, err := redis.NewConnection(cfg)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		redisClient = rdb.GetClient()

		productRepo = postgres.NewProductRepository(db.DB)
		categoryRepo = postgres.NewCategoryRepository(db.DB)
		orderRepo = postgres.NewOrderRepository(db.DB)
		cartStore = cart.NewRedisStore(redisClient, cfg.Store.SessionTTL)
		wishStore = wishlist.NewRedisStore(redisClient, cfg.Store.SessionTTL)
		sessionStore = session.NewRedisStore(redisClient, cfg.Store.SessionTTL)

		health["database"] = db.Health
		health["redis"] = rdb.Health

	default:
		products, err := catalog.NewSeededProductRepository()
		if err != nil {
			logger.Fatalf("Failed to load product fixtures: %v", err)
		}
		categories, err := catalog.NewSeededCategoryRepository()
		if err != nil {
			logger.Fatalf("Failed to load category fixtures: %v", err)
		}

		productRepo = products
		categoryRepo = categories
		orderRepo = order.NewMemoryRepository()
		cartStore = cart.NewMemoryStore()
		wishStore = wishlist.NewMemoryStore()
		sessionStore = session.NewMemoryStore()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	catalogService := catalog.NewService(productRepo, categoryRepo, cfg, rng)
	cartService := cart.NewService(cartStore, catalogService, cfg)
	wishlistService := wishlist.NewService(wishStore, catalogService)
	orderService := order.NewService(orderRepo, cartService, catalogService, cfg)
	gate := session.NewGate(sessionStore, auth.NewJWTManager(cfg), auth.NewCredentialManager(cfg), cfg, logger)

	server := httpserver.NewServer(cfg, &routes.Services{
		Catalog:  catalogService,
		Cart:     cartService,
		Wishlist: wishlistService,
		Order:    orderService,
		Gate:     gate,
	}, logger, redisClient, health)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}
}
