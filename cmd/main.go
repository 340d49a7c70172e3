package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
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
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/finance-flow/docs"
	"github.com/sbilibin2017/finance-flow/internal/handlers"
	"github.com/sbilibin2017/finance-flow/internal/jwt"
	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/middlewares"
	"github.com/sbilibin2017/finance-flow/internal/migrations"
	"github.com/sbilibin2017/finance-flow/internal/repositories"
	"github.com/sbilibin2017/finance-flow/internal/services"
	"github.com/sbilibin2017/finance-flow/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title FinanceFlow API
// @version 1.0.0
// @description Records income and expense transactions with receipts and a Pending to Completed approval step
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath, tokenFor := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if tokenFor != "" {
		token, err := issueToken(cfg, tokenFor)
		if err != nil {
			log.Fatalf("failed to issue approver token: %v", err)
		}
		fmt.Println(token)
		return
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path and
// the approver to issue a token for, if any.
func parseFlags() (configPath, tokenFor string) {
	c := flag.String("c", "config.env", "Path to configuration file")
	t := flag.String("token", "", "Print a signed approver token for the given name and exit")
	flag.Parse()
	return *c, *t
}

// config holds every setting read from the environment.
type config struct {
	appHost         string
	appPort         string
	logLevel        string
	defaultApprover string
	maxUploadMB     int

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int

	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int
	redisCategoryTTL  int

	kafkaBrokers []string
	kafkaTopic   string

	jwtSecretKey string
	jwtExpSecond int

	storage storage.Config
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, JWT and attachment configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var (
		cfg config
		err error
	)
	atoi := func(key, defaultValue string, dst *int) {
		if err != nil {
			return
		}
		if *dst, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.defaultApprover = getEnv("APP_DEFAULT_APPROVER", "Admin")
	atoi("APP_MAX_UPLOAD_MB", "10", &cfg.maxUploadMB)

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "financeflow")
	atoi("POSTGRES_PORT", "5432", &cfg.pgPort)
	atoi("POSTGRES_MAX_OPEN_CONNS", "16", &cfg.pgMaxOpenConns)
	atoi("POSTGRES_MAX_IDLE_CONNS", "8", &cfg.pgMaxIdleConns)

	// Redis config, empty host disables the category cache
	cfg.redisHost = getEnv("REDIS_HOST", "")
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	atoi("REDIS_PORT", "6379", &cfg.redisPort)
	atoi("REDIS_DB", "0", &cfg.redisDB)
	atoi("REDIS_POOL_SIZE", "10", &cfg.redisPoolSize)
	atoi("REDIS_MIN_IDLE_CONNS", "2", &cfg.redisMinIdleConns)
	atoi("REDIS_CATEGORY_TTL_SECOND", "60", &cfg.redisCategoryTTL)

	// Kafka config, no brokers disables event publishing
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.kafkaBrokers = append(cfg.kafkaBrokers, b)
			}
		}
	}
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "transactions")

	// JWT config, empty secret disables approver tokens
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "")
	atoi("JWT_EXP_SECOND", "86400", &cfg.jwtExpSecond)

	// Attachment config
	cfg.storage = storage.Config{
		Backend:            getEnv("ATTACHMENT_BACKEND", storage.BackendLocal),
		Dir:                getEnv("ATTACHMENT_DIR", "uploads"),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		AzblobServiceURL:   getEnv("AZBLOB_SERVICE_URL", ""),
		AzblobContainer:    getEnv("AZBLOB_CONTAINER", ""),
		AzblobAccountName:  getEnv("AZBLOB_ACCOUNT_NAME", ""),
		AzblobAccountKey:   getEnv("AZBLOB_ACCOUNT_KEY", ""),
	}

	if err != nil {
		return nil, err
	}
	if cfg.maxUploadMB <= 0 {
		return nil, errors.New("APP_MAX_UPLOAD_MB must be positive")
	}
	return &cfg, nil
}

// issueToken signs an approver token with the configured secret.
func issueToken(cfg *config, approver string) (string, error) {
	if cfg.jwtSecretKey == "" {
		return "", errors.New("JWT_SECRET_KEY is not set")
	}
	j := jwt.New(cfg.jwtSecretKey, time.Duration(cfg.jwtExpSecond)*time.Second)
	return j.Generate(context.Background(), approver)
}

// run initializes the logger, database, cache, event writer, attachment store
// and HTTP server. It sets up routes, applies middleware, and handles
// graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Amounts are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.pgHost, "port", cfg.pgPort, "db", cfg.pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	if err := migrations.Up(dsn); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	// Connect to Redis
	var categoryCache services.CategoryCache
	if cfg.redisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
			Password:     cfg.redisPassword,
			DB:           cfg.redisDB,
			PoolSize:     cfg.redisPoolSize,
			MinIdleConns: cfg.redisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		categoryCache = repositories.NewCategoryCacheRepository(rdb, time.Duration(cfg.redisCategoryTTL)*time.Second)
	} else {
		logger.Log.Info("Redis not configured, category cache disabled")
	}

	// Kafka writer
	var kafkaWriter services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.kafkaBrokers...),
			Topic:                  cfg.kafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
	} else {
		logger.Log.Info("Kafka not configured, transaction events disabled")
	}

	// Attachment store
	store, err := storage.New(ctx, cfg.storage)
	if err != nil {
		return fmt.Errorf("attachment store: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}
	logger.Log.Infow("Attachment store ready", "backend", cfg.storage.Backend)

	// Approver tokens
	var tokener middlewares.Tokener
	if cfg.jwtSecretKey != "" {
		tokener = jwt.New(cfg.jwtSecretKey, time.Duration(cfg.jwtExpSecond)*time.Second)
	}

	// Initialize repositories
	sequenceRepo := repositories.NewSequenceRepository(db)
	txnWriteRepo := repositories.NewTransactionWriteRepository(db, middlewares.GetTxFromContext)
	txnReadRepo := repositories.NewTransactionReadRepository(db, middlewares.GetTxFromContext)
	categoryRepo := repositories.NewCategoryReadRepository(db)

	// Initialize services. Create checks categories against the database,
	// the cache only serves the listing endpoint.
	categoryService := services.NewCategoryService(categoryRepo, categoryCache)
	attachmentService := services.NewAttachmentService(store)
	transactionService := services.NewTransactionService(
		sequenceRepo, txnWriteRepo, txnReadRepo, categoryRepo, attachmentService, kafkaWriter,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	createHandler := handlers.NewCreateTransactionHandler(transactionService, int64(cfg.maxUploadMB)<<20)
	approveHandler := handlers.NewApproveTransactionHandler(transactionService)
	listHandler := handlers.NewListTransactionsHandler(transactionService)
	categoriesHandler := handlers.NewListCategoriesHandler(categoryService)
	attachmentHandler := handlers.NewAttachmentHandler(store)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.CORSMiddleware())

	r.Get("/", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/transactions", createHandler)
		r.Get("/transactions", listHandler)
		r.With(
			middlewares.ApproverMiddleware(tokener, cfg.defaultApprover),
			middlewares.TxMiddleware(db),
		).Patch("/transactions/{id}/approve", approveHandler)
		r.Get("/categories/{type}", categoriesHandler)
	})

	r.Get(strings.TrimSuffix(services.AttachmentURLPrefix, "/")+"/{name}", attachmentHandler)

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
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
