package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blisora/storefront/internal/backend"
	"github.com/blisora/storefront/internal/cart"
	"github.com/blisora/storefront/internal/catalog"
	"github.com/blisora/storefront/internal/checkout"
	"github.com/blisora/storefront/internal/confirmation"
	"github.com/blisora/storefront/internal/events"
	h "github.com/blisora/storefront/internal/http"
	"github.com/blisora/storefront/internal/payment"
	"github.com/blisora/storefront/internal/session"
)

type Config struct {
	HTTPPort        string
	APIBaseURL      string
	SessionStore    string // "redis" or "sqlite"
	RedisAddr       string
	RedisPassword   string
	SQLitePath      string
	MigrationsPath  string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	BackendTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:4002/api"),
		SessionStore:    getEnv("SESSION_STORE", "redis"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		SQLitePath:      getEnv("SQLITE_PATH", "./storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/session/migrations"),
		KafkaBrokers:    brokers,
		RequestTimeout:  30 * time.Second,
		BackendTimeout:  15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func newSessionStore(ctx context.Context, cfg *Config) (session.Store, error) {
	if cfg.SessionStore == "sqlite" {
		store, err := session.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := store.RunMigrations(cfg.MigrationsPath); err != nil {
			return nil, err
		}
		log.Printf("Using SQLite session store at %s", cfg.SQLitePath)
		return store, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Printf("Using Redis session store at %s", cfg.RedisAddr)
	return session.NewRedisStore(client), nil
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up session store: %v", err)
	}
	defer store.Close()

	publisher := events.NewPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()
	if len(cfg.KafkaBrokers) > 0 {
		log.Printf("Publishing saga events to %s", strings.Join(cfg.KafkaBrokers, ","))
	}

	client := backend.NewClient(cfg.APIBaseURL, cfg.BackendTimeout)
	log.Printf("Commerce API at %s", cfg.APIBaseURL)

	handlers := h.Handlers{
		Products: h.NewProductHandler(catalog.NewService(client, store)),
		Cart:     h.NewCartHandler(cart.NewService(client)),
		Checkout: h.NewCheckoutHandler(checkout.NewSaga(client, store, publisher)),
		Payment:  h.NewPaymentHandler(payment.NewService(client, store, publisher)),
		Orders:   h.NewOrdersHandler(confirmation.NewService(client, store)),
	}

	router := h.NewRouter(handlers, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
