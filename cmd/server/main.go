package main

import (
	"os"

	"github.com/land-deals/backend/internal/app"
	"github.com/land-deals/backend/internal/cache"
	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/provider"
	"github.com/land-deals/backend/internal/router"
	"github.com/land-deals/backend/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	zapLogger := logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer func() { _ = zapLogger.Sync() }()

	if cfg.Server.Mode == "release" && cfg.JWT.SecretKey == "change-me-in-production" {
		logger.Warnw("jwt_secret_default",
			"hint", "set JWT_SECRET before exposing this instance",
		)
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		logger.Errorw("db_init_failed", "error", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Errorw("db_migrate_failed", "error", err)
		os.Exit(1)
	}
	storedVersion, err := models.StoredSchemaVersion()
	if err != nil {
		logger.Errorw("schema_version_read_failed", "error", err)
		os.Exit(1)
	}
	if storedVersion != 0 && storedVersion != models.CurrentSchemaVersion {
		logger.Warnw("schema_version_drift",
			"stored", storedVersion,
			"current", models.CurrentSchemaVersion,
		)
	}
	if err := models.EnsureSchemaVersion(); err != nil {
		logger.Errorw("schema_version_failed", "error", err)
		os.Exit(1)
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	if err := models.InitDefaultAdmin(adminUsername, adminPassword); err != nil {
		logger.Errorw("admin_init_failed", "error", err)
		os.Exit(1)
	}

	cache.InitRedis(cfg.Redis)
	defer cache.Close()

	container, err := provider.NewContainer(cfg, models.DB)
	if err != nil {
		logger.Errorw("container_init_failed", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.New(container)

	app.Run(
		app.NewHTTPService(cfg.Server, engine),
		app.NewWorkerService(worker.NewService(cfg.Queue, container.Store, container.PaymentService)),
	)
}
