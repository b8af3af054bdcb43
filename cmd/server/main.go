package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pokedex-service/internal/cache"
	"pokedex-service/internal/dex"
	"pokedex-service/internal/handlers"
	"pokedex-service/internal/httpserver"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/pokeapi"
	"pokedex-service/pkg/logging"
)

type Config struct {
	Port         string
	CacheBackend string // "memory" or "redis"
	CacheTTL     time.Duration
	RedisAddr    string
	PokeAPIURL   string
	JWTSecret    string
	AuthUsername string
	AuthPassword string
}

func LoadConfig() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		CacheBackend: getenv("CACHE_BACKEND", "memory"),
		CacheTTL:     getenvDuration("CACHE_TTL", dex.DefaultTTL),
		RedisAddr:    getenv("REDIS_ADDR", "127.0.0.1:6379"),
		PokeAPIURL:   getenv("POKEAPI_BASE_URL", "https://pokeapi.co"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AuthUsername: getenv("AUTH_USERNAME", "admin"),
		AuthPassword: os.Getenv("AUTH_PASSWORD"),
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func run() error {
	// ----- Env file (best effort) -----
	_ = godotenv.Load()

	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg := LoadConfig()

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.String("pokeapi_base_url", cfg.PokeAPIURL),
		zap.Bool("auth_enabled", cfg.JWTSecret != ""),
	)

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		// Fail fast if Redis is misconfigured
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	// ----- Cache store -----
	store := cache.NewStore(cache.Config{
		Backend: cfg.CacheBackend,
		TTL:     cfg.CacheTTL,
		Prefix:  "pokedex",
	}, redisClient)
	store = cache.NewLoggingStore(store)

	// ----- Upstream catalog client -----
	catalogClient, err := pokeapi.NewClient(pokeapi.Config{
		BaseURL: cfg.PokeAPIURL,
	}, logger)
	if err != nil {
		return err
	}
	if closer, ok := catalogClient.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// ----- Aggregation service -----
	service := dex.NewService(catalogClient, store, cfg.CacheTTL, logger)

	// ----- Handlers -----
	pokemonHandler := handlers.NewPokemonHandler(service)

	var authHandler *handlers.AuthHandler
	if cfg.JWTSecret != "" {
		authHandler = handlers.NewAuthHandler(
			[]byte(cfg.JWTSecret),
			cfg.AuthUsername,
			cfg.AuthPassword,
			24*time.Hour,
		)
	}

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, pokemonHandler, authHandler)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting server",
		zap.String("addr", srv.Addr),
		zap.String("cache_backend", cfg.CacheBackend),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// getenv returns the value of the environment variable key or def if not set.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
