package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/instantr/instantr-backend/internal/config"
	"github.com/instantr/instantr-backend/internal/handler"
	"github.com/instantr/instantr-backend/internal/middleware"
	"github.com/instantr/instantr-backend/internal/migration"
	"github.com/instantr/instantr-backend/internal/repository"
	"github.com/instantr/instantr-backend/internal/routes"
	"github.com/instantr/instantr-backend/internal/service"
	"github.com/instantr/instantr-backend/pkg/identity"
	pkglogger "github.com/instantr/instantr-backend/pkg/logger"
	pkgredis "github.com/instantr/instantr-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		middleware.SetDBConnectionsActive(float64(sqlDB.Stats().OpenConnections))
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		client, err := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			pkglogger.Warn("Redis unavailable: %v (rate limiting disabled)", err)
		} else {
			pkglogger.Info("Connected to Redis")
			redisClient = client
		}
	}

	var identityClient *identity.Client
	if cfg.Identity.Enabled && cfg.Identity.BaseURL != "" {
		identityClient = identity.NewClient(identity.Config{
			BaseURL:    cfg.Identity.BaseURL,
			ServiceID:  cfg.Identity.ServiceID,
			ServiceKey: cfg.Identity.ServiceKey,
		})
		pkglogger.Info("Identity provider configured: %s", cfg.Identity.BaseURL)
	}

	// Repositories
	blogRepo := repository.NewBlogRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	historyRepo := repository.NewApprovalHistoryRepository(db)
	adminHistRepo := repository.NewAdminApprovalHistoryRepository(db)

	// Services
	moderationService := service.NewModerationService(db, submissionRepo, blogRepo, historyRepo, adminHistRepo)
	var accountDeleter service.AccountDeleter
	if identityClient != nil {
		accountDeleter = identityClient
	}
	userService := service.NewUserService(userRepo, accountDeleter)

	// Handlers
	blogHandler := handler.NewBlogHandler(blogRepo)
	videoHandler := handler.NewVideoHandler(videoRepo)
	userHandler := handler.NewUserHandler(userService, userRepo)
	moderationHandler := handler.NewModerationHandler(moderationService, historyRepo, adminHistRepo, blogRepo)

	if env != "development" && env != "dev" && env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil {
		rlCfg := middleware.DefaultRateLimitConfig()
		if cfg.RateLimit.RequestsPerMinute > 0 {
			rlCfg.RequestsPerMinute = cfg.RateLimit.RequestsPerMinute
		}
		router.Use(middleware.RateLimit(redisClient, rlCfg))
	}

	routes.Setup(router, blogHandler, videoHandler, userHandler, moderationHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// initDB opens the MySQL connection pool. TranslateError turns driver
// duplicate-key errors into gorm.ErrDuplicatedKey, which the user service
// relies on.
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
