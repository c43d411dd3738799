package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"customersatisfaction/pkg/logger"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/config"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/handler"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/infrastructure"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/infrastructure/cache"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/infrastructure/messaging"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/processor"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/service"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/util"
)

const serviceName = "satisfaction-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)

	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// === MONGODB ===
	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().Str("database", cfg.MongoDB.Database).Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := repository.EnsureReviewIndexes(ctx, db); err != nil {
		logger.Warn().Err(err).Msg("Failed to ensure review indexes")
	}

	// === IDENTITY STORE ===
	var userRepo repository.UserRepository
	switch cfg.Auth.IdentityStore {
	case config.IdentityStorePostgres:
		pool, gormDB, err := connectPostgres(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		if err := repository.MigrateUsers(gormDB); err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate users table")
		}
		userRepo = repository.NewUserPostgresRepository(gormDB)
		logger.Info().Msg("Using PostgreSQL identity store")
	default:
		userRepo = repository.NewUserRepository(db)
		logger.Info().Msg("Using MongoDB identity store")
	}

	// === REDIS (кеш отчётов) ===
	var reportCache infrastructure.ReportCache
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, report cache disabled")
		} else {
			redisCache := cache.NewRedisReportCache(redisClient, cfg.Redis.TTL)
			defer redisCache.Close()
			reportCache = redisCache
			logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("Report cache enabled")
		}
	}

	// === KAFKA ===
	var publisher infrastructure.MessagePublisher = messaging.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = messaging.NewEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.ReviewTopic, cfg.Kafka.DigestTopic)
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("review_topic", cfg.Kafka.ReviewTopic).
			Str("digest_topic", cfg.Kafka.DigestTopic).
			Msg("Initialized Kafka producer")
	}
	defer publisher.Close()

	// === СЕРВИСЫ ===
	reviewRepo := repository.NewReviewRepository(db)
	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	reviewService := service.NewReviewService(reviewRepo, publisher, reportCache)
	reportService := service.NewReportService(reviewRepo, reportCache)
	authService := service.NewAuthService(userRepo, jwtManager, cfg.Auth.BcryptCost)

	// === CRON ===
	if cfg.Digest.Schedule != "" {
		digestScheduler := processor.NewDigestScheduler(reportService, publisher)
		if err := digestScheduler.Start(ctx, cfg.Digest.Schedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start digest scheduler")
		}
		defer digestScheduler.Stop()
	}

	router := handler.SetupRoutes(
		handler.NewReviewHandler(reviewService),
		handler.NewReportHandler(reportService),
		handler.NewAuthHandler(authService),
		handler.NewAuthMiddleware(authService),
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Satisfaction Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Satisfaction Service...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Satisfaction Service stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		client, err = tryConnectMongoDB(clientOptions)
		if err == nil {
			return client, nil
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to MongoDB after 10 attempts: %w", err)
}

func tryConnectMongoDB(clientOptions *options.ClientOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// connectPostgres поднимает пул pgx и открывает поверх него GORM
func connectPostgres(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, *gorm.DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid POSTGRES_DSN: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MaxConnIdleTime = time.Minute

	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to PostgreSQL, retrying...")
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to PostgreSQL after 10 attempts: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return pool, gormDB, nil
}
