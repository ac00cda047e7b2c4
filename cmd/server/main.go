package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"woa-fleet/hangar/internal/api"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/config"
	"woa-fleet/hangar/internal/db"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/metrics"
	"woa-fleet/hangar/internal/routes"
	"woa-fleet/hangar/internal/storage"
)

func newCache(cfg *config.Config) (common.CacheInterface, error) {
	if cfg.Cache.Backend == "redis" {
		return common.NewRedisCacheService(cfg.Redis)
	}
	return common.NewCacheService(10*time.Minute, 5*time.Minute), nil
}

func newImageStore(cfg config.ImagesConfig) (storage.ImageStore, error) {
	if cfg.Backend == "azure" {
		return storage.NewAzureImageStore(cfg.AzureAccountURL, cfg.AzureContainer)
	}
	return storage.NewLocalImageStore(afero.NewOsFs(), cfg.Dir)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Hangar starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DB.Driver,
		"cache_backend", cfg.Cache.Backend,
		"image_backend", cfg.Images.Backend,
		"invitation_mode", cfg.Auth.InvitationMode,
		"captcha", cfg.Captcha.Enabled(),
	)

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	orm, err := db.InitORM(cfg.DB)
	if err != nil {
		logging.Fatal("Failed to connect to database (GORM)", "error", err)
	}
	if err := db.RegisterMetrics(orm, metricsReg); err != nil {
		logging.Fatal("Failed to register database metrics", "error", err)
	}

	sqlxDB, err := db.InitSQLX(cfg.DB, orm)
	if err != nil {
		logging.Fatal("Failed to connect to database (sqlx)", "error", err)
	}

	cache, err := newCache(cfg)
	if err != nil {
		logging.Fatal("Failed to initialize cache", "backend", cfg.Cache.Backend, "error", err)
	}
	defer cache.Close()

	store, err := newImageStore(cfg.Images)
	if err != nil {
		logging.Fatal("Failed to initialize image store", "backend", cfg.Images.Backend, "error", err)
	}

	deps, err := api.InitDependencies(cfg, orm, sqlxDB, cache, store, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           routes.NewRouter(deps, time.Now()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}
	if err := sqlxDB.Close(); err != nil {
		logging.Warn("Failed to close database", "error", err)
	}
	logging.Info("Server stopped")
}
