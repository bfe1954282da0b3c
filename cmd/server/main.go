// Package main is the entry point for the card ledger service. It
// initializes all dependencies, sets up the HTTP server, and starts
// the application.
package main

import (
	"context"
	"time"

	"cardvault/internal/config"
	"cardvault/internal/events"
	"cardvault/internal/repositories"
	"cardvault/internal/routes"
	"cardvault/internal/services/collateral"
	"cardvault/internal/services/ledger"
	"cardvault/internal/services/oracle"
	"cardvault/internal/services/payment"
	"cardvault/internal/services/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Postgres: card snapshots + token-ledger accounts.
	db, err := repositories.OpenDB(repositories.DefaultDBConfig)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	// Redis read-side cache, flushed on startup so stale entries never
	// survive a restart.
	redisClient := repositories.NewRedisClient(&repositories.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	cache := repositories.NewCacheService(redisClient, 5*time.Minute)
	if err := cache.FlushAll(context.Background()); err != nil {
		log.Warnf("failed to flush redis cache: %v", err)
	}
	defer cache.Close()

	treasury := config.GetEnv("TREASURY_ACCOUNT", "treasury")
	tokens := token.NewGormLedger(db, treasury)

	feed := oracle.NewFeed()
	if raw := config.GetEnv("ORACLE_PRICE", ""); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			log.Fatalf("invalid ORACLE_PRICE: %v", err)
		}
		feed.Publish(price, int32(config.GetIntEnv("ORACLE_DECIMALS", 0)), time.Now())
	}

	store := repositories.NewCardRepository(db, cache)
	initial, err := store.LoadAll(context.Background())
	if err != nil {
		log.Fatalf("failed to load card snapshots: %v", err)
	}
	log.Infof("loaded %d card snapshots", len(initial))

	deps := ledger.Dependencies{
		Tokens:  tokens,
		Oracle:  feed,
		Rail:    payment.NewTokenRail(tokens),
		Store:   store,
		Emitter: events.NewLogEmitter(log),
	}
	if key := config.GetEnv("STRIPE_SECRET_KEY", ""); key != "" {
		deps.Rail = payment.NewStripeRail(key, config.GetEnv("STRIPE_CURRENCY", "usd"))
	}

	svc := ledger.NewService(ledger.Config{
		Owner:           config.GetEnv("OWNER_ADDRESS", "owner"),
		TreasuryAccount: treasury,
		Collateral: collateral.Config{
			MaxLeverage: config.GetInt64Env("MAX_LEVERAGE", collateral.DefaultMaxLeverage),
			MaxPriceAge: config.GetDurationEnv("ORACLE_MAX_AGE", collateral.DefaultMaxPriceAge),
			RepayWindow: config.GetDurationEnv("REPAY_WINDOW", collateral.DefaultRepayWindow),
		},
		InitialCards: initial,
	}, deps)

	app := fiber.New()

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// The gate already rejects concurrent mutations; the limiter keeps
	// abusive clients from hammering the rejection path.
	app.Use("/api", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "too many requests",
			})
		},
	}))

	routes.SetupRoutes(app, svc, cache)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
