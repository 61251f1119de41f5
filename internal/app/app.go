package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"habit-store/internal/config"
	cronpkg "habit-store/internal/infrastructure/cron"
	infradb "habit-store/internal/infrastructure/db"
	"habit-store/internal/infrastructure/kafka"
	"habit-store/internal/infrastructure/postgres"
	infraredis "habit-store/internal/infrastructure/redis"
	"habit-store/internal/service"
	transport "habit-store/internal/transport/http"
	"habit-store/internal/transport/http/middleware"
	"habit-store/pkg/jwt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App represents the application
type App struct {
	config          *config.Config
	httpServer      *http.Server
	streakRefresher *cronpkg.StreakRefresher
	dbPool          *pgxpool.Pool
	redisClient     *redis.Client
	kafkaProducer   *kafka.Producer
}

// New creates a new application
func New() (*App, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Configuration loaded successfully")

	// Initialize PostgreSQL connection pool
	ctx := context.Background()
	dbPool, err := infradb.NewPostgresPool(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	fmt.Println("Connected to PostgreSQL")

	// Initialize Redis client for guest sessions (optional)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = infraredis.NewClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		fmt.Println("Connected to Redis")
	} else {
		fmt.Println("Redis is disabled, guest sessions use in-process storage")
	}

	// Initialize Kafka producer (optional)
	var kafkaProducer *kafka.Producer
	var producer service.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaProducer = kafka.NewProducer(&cfg.Kafka)
		producer = kafkaProducer
		fmt.Println("Kafka producer initialized")
	} else {
		fmt.Println("Kafka is disabled in configuration")
	}

	// Initialize the per-identity store resolver
	resolver := newStoreResolver(dbPool, redisClient, cfg.Guest.SessionTTL, producer)
	fmt.Println("Services initialized")

	// Initialize streak refresher (if enabled)
	var streakRefresher *cronpkg.StreakRefresher
	if cfg.Scheduler.Enabled {
		maintenance := service.NewStreakMaintenance(postgres.NewStreakRefreshRepository(dbPool))
		streakRefresher = cronpkg.NewStreakRefresher(maintenance, cfg.Scheduler.CheckInterval)
		fmt.Println("Streak refresher initialized")
	} else {
		fmt.Println("Streak refresher is disabled in configuration")
	}

	// Initialize HTTP transport
	tokenManager := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer)
	identity := middleware.NewIdentityMiddleware(tokenManager)
	handler := transport.NewHabitHandler(resolver)
	router := transport.NewRouter(handler, identity, cfg.HTTP.RequestsPerMinute)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	return &App{
		config:          cfg,
		httpServer:      httpServer,
		streakRefresher: streakRefresher,
		dbPool:          dbPool,
		redisClient:     redisClient,
		kafkaProducer:   kafkaProducer,
	}, nil
}

// Run starts the application
func (a *App) Run() error {
	// Setup signal handling for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start streak refresher if enabled
	if a.streakRefresher != nil {
		if err := a.streakRefresher.Start(); err != nil {
			return fmt.Errorf("failed to start streak refresher: %w", err)
		}
	}

	// Start HTTP server in a goroutine
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
			quit <- syscall.SIGTERM
		}
	}()

	fmt.Printf("%s service started on port %d\n", a.config.Service.Name, a.config.HTTP.Port)
	fmt.Println("Press Ctrl+C to shutdown...")

	// Wait for interrupt signal
	<-quit
	fmt.Println("\nShutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("HTTP server shutdown error: %v\n", err)
	}

	// Stop streak refresher
	if a.streakRefresher != nil {
		a.streakRefresher.Stop()
	}

	// Close Kafka producer
	if a.kafkaProducer != nil {
		if err := a.kafkaProducer.Close(); err != nil {
			fmt.Printf("Kafka producer close error: %v\n", err)
		}
	}

	// Close Redis client
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			fmt.Printf("Redis close error: %v\n", err)
		}
	}

	// Close database pool
	a.dbPool.Close()

	fmt.Println("Server shutdown complete")
	return nil
}
