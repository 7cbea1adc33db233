package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cypher125/siwes/internal/config"
	"github.com/cypher125/siwes/internal/handler"
	"github.com/cypher125/siwes/internal/handler/middleware"
	"github.com/cypher125/siwes/internal/service"
	"github.com/cypher125/siwes/internal/session"
	"github.com/cypher125/siwes/internal/upstream"
	"github.com/cypher125/siwes/pkg/logger"
	"github.com/cypher125/siwes/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg.Server.Environment)

	// Initialize Redis client for the session cache
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLog.Warn("error closing Redis connection", "error", err)
		}
	}()
	appLog.Info("session store connected", "addr", cfg.Redis.Addr())

	// Session snapshots live exactly as long as the refresh token.
	sessionTTL := time.Duration(cfg.Auth.RefreshTTLDays) * 24 * time.Hour
	sessions := session.NewStore(redisClient, sessionTTL)

	// Initialize the upstream API client
	client := upstream.NewClient(cfg.Upstream, cfg.Auth, appLog)
	appLog.Info("upstream client configured", "base_url", cfg.Upstream.BaseURL)

	// Initialize validator and services
	validate := validator.New()
	authService := service.NewAuthService(client, validate, appLog)

	// Initialize handlers
	authHandler := handler.NewAuthHandler()
	studentHandler := handler.NewStudentHandler(validate)
	supervisorHandler := handler.NewSupervisorHandler(validate)
	adminHandler := handler.NewAdminHandler()
	healthHandler := handler.NewHealthHandler(redisClient)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SIWES Portal",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler(appLog),
	})

	// Global middlewares. The edge guard runs before the auth context
	// so an unauthenticated request never touches the session store.
	app.Use(middleware.Recovery(appLog))
	app.Use(middleware.RequestLogger(appLog))
	app.Use(middleware.CORS(cfg.Server.AllowOrigins))
	app.Use(middleware.EdgeGuard())
	app.Use(middleware.AuthContext(authService, client, sessions, cfg.Auth.CookieDomain, cfg.Server.IsProduction()))

	handler.SetupRoutes(app, authHandler, studentHandler, supervisorHandler, adminHandler, healthHandler)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		appLog.Info("server starting", "addr", addr, "environment", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			appLog.Error("server failed to start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Error("server forced to shutdown", "error", err)
	}

	appLog.Info("server stopped")
}

// initRedis initializes the Redis client and verifies the connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing Redis after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// errorHandler handles Fiber-level errors
func errorHandler(appLog logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		appLog.Warn("request error", "method", c.Method(), "path", c.Path(), "error", err)

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
