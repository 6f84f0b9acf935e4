package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/gw-bank-cards/docs"
	"github.com/sbilibin2017/gw-bank-cards/internal/handlers"
	"github.com/sbilibin2017/gw-bank-cards/internal/jwt"
	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/middlewares"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
	"github.com/sbilibin2017/gw-bank-cards/internal/repositories"
	"github.com/sbilibin2017/gw-bank-cards/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Card number cache backends.
const (
	cacheRedis  = "redis"
	cacheMemory = "memory"
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	CardNumberCache string

	KafkaBrokers           []string
	KafkaTransactionsTopic string

	JWTSecretKey string
	JWTExpSecond int

	AdminUsername string
	AdminPassword string
}

// @title gw-bank-cards API
// @version 1.0.0
// @description Bank card management: users, cards and transfers between own cards
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, JWT and bootstrap configuration.
// Variables already set in the process environment win over the file.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	cfg.CardNumberCache = getEnv("CARD_NUMBER_CACHE", cacheRedis)
	if cfg.CardNumberCache != cacheRedis && cfg.CardNumberCache != cacheMemory {
		err = fmt.Errorf("CARD_NUMBER_CACHE: unknown backend %q", cfg.CardNumberCache)
		return
	}

	// Kafka config; no brokers disables event publishing
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTransactionsTopic = getEnv("KAFKA_TRANSACTIONS_TOPIC", "card-transactions")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "3600"); err != nil {
		return
	}

	// Default administrator
	cfg.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "admin")

	return
}

// run initializes the logger, database, Redis, Kafka and HTTP server, seeds
// the administrator, warms the card number cache and serves until ctx is
// canceled or a shutdown signal arrives.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Card number cache
	var cardNumberCache services.CardNumberCache
	switch cfg.CardNumberCache {
	case cacheRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		cardNumberCache = repositories.NewCardNumberCacheRepository(rdb, "")
	default:
		cardNumberCache = repositories.NewCardNumberMemoryCache()
	}

	// Kafka writer for transfer outcomes
	var events services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTransactionsTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		events = kw
		logger.Log.Infow("Publishing transfer events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTransactionsTopic)
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	uow := repositories.NewTxManager(db)
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, repositories.GetTxFromContext)
	cardReadRepo := repositories.NewCardReadRepository(db)
	cardWriteRepo := repositories.NewCardWriteRepository(db, repositories.GetTxFromContext)
	txnReadRepo := repositories.NewTransactionReadRepository(db)
	txnWriteRepo := repositories.NewTransactionWriteRepository(db, repositories.GetTxFromContext)

	// Initialize services
	generator := services.NewCardNumberGenerator(cardNumberCache)
	if err := generator.Warm(ctx, cardReadRepo); err != nil {
		return fmt.Errorf("card number cache warm-up failed: %w", err)
	}

	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens)
	if err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("administrator bootstrap failed: %w", err)
	}

	userService := services.NewUserService(userReadRepo, userWriteRepo)
	cardService := services.NewCardService(uow, cardReadRepo, cardWriteRepo, userReadRepo, generator)
	transferService := services.NewTransferService(uow, cardWriteRepo, txnWriteRepo, events)
	transactionService := services.NewTransactionService(txnReadRepo, txnWriteRepo, userReadRepo)

	r := newRouter(cfg, tokens, authService, userService, cardService, transferService, transactionService)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter mounts every route under /api. Routes not marked public need a
// bearer token; administrative routes additionally need the ADMIN role.
func newRouter(
	cfg config,
	tokens middlewares.Tokener,
	authService handlers.Authenticator,
	userService handlers.UserManager,
	cardService handlers.CardManager,
	transferService handlers.Transferer,
	transactionService handlers.TransactionManager,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	authenticated := middlewares.AuthMiddleware(tokens)
	adminOnly := middlewares.RequireRole(models.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public routes
			r.Post("/register", handlers.NewRegisterHandler(authService))
			r.Post("/login", handlers.NewLoginHandler(authService))

			r.With(authenticated).Post("/change-password", handlers.NewChangePasswordHandler(authService))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Get("/", handlers.NewListUsersHandler(userService))
			r.Post("/", handlers.NewCreateUserHandler(userService))
			r.Get("/{id}", handlers.NewGetUserHandler(userService))
			r.Put("/{id}", handlers.NewUpdateUserHandler(userService))
			r.Delete("/{id}", handlers.NewDeleteUserHandler(userService))
		})

		r.Route("/cards", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/{id}", handlers.NewGetCardHandler(cardService))
			r.Patch("/{id}/top-up", handlers.NewTopUpCardHandler(cardService))

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", handlers.NewListCardsHandler(cardService))
				r.Get("/user", handlers.NewListCardsByOwnerHandler(cardService))
				r.Post("/", handlers.NewCreateCardHandler(cardService))
				r.Patch("/block/{id}", handlers.NewBlockCardHandler(cardService))
				r.Delete("/{id}", handlers.NewDeleteCardHandler(cardService))
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/transfer", handlers.NewTransferHandler(transferService))
			r.Get("/my", handlers.NewMyTransactionsHandler(transactionService))

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", handlers.NewListTransactionsHandler(transactionService))
				r.Get("/user", handlers.NewListTransactionsByUserHandler(transactionService))
				r.Get("/card", handlers.NewListTransactionsByCardHandler(transactionService))
				r.Get("/{id}", handlers.NewGetTransactionHandler(transactionService))
				r.Delete("/{id}", handlers.NewDeleteTransactionHandler(transactionService))
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	return r
}
