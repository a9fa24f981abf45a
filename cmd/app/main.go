package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/api"
	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/pkg/authtoken"

	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := newLogger(config)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(config, logger); err != nil {
		logger.Fatal("service stopped", zap.Error(err))
	}
}

func newLogger(config cmd.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	if config.IsProduction() {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	return zc.Build()
}

func run(config cmd.Config, logger *zap.Logger) error {
	db, err := gorm.Open(pgdriver.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	root, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		return err
	}

	doc, err := api.Load()
	if err != nil {
		return err
	}
	if err = api.RegisterSwagger(doc); err != nil {
		return err
	}
	verifier, err := authtoken.NewVerifier(config.JWTSecret)
	if err != nil {
		return err
	}

	e, err := httpin.NewRouter(root.CreateHTTPServer(), httpin.RouterConfig{
		Verifier: verifier,
		Document: doc,
		Debug:    !config.IsProduction(),
	})
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if config.UpstreamBaseURL == "" {
		logger.Warn("UPSTREAM_BASE_URL is not set, upstream reconciliation is disabled")
	} else if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("port", config.HTTPPort))
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
