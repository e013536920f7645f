package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"model-config-service/internal/adapters/primary/http/handlers"
	"model-config-service/internal/adapters/primary/http/middleware"
	"model-config-service/internal/adapters/secondary/filesource"
	"model-config-service/internal/adapters/secondary/httpsource"
	"model-config-service/internal/adapters/secondary/kube"
	"model-config-service/internal/adapters/secondary/postgres"
	"model-config-service/internal/adapters/secondary/s3source"
	"model-config-service/internal/config"
	output "model-config-service/internal/core/ports/output"
	"model-config-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Revision store (Optional - based on config)
	var revisionRepo output.RevisionRepository
	if cfg.Database.Enabled {
		pool, err := newPool(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("database: %v", err)
		}
		revisionRepo = postgres.NewRevisionRepository(pool)
		log.Info("database connection established")
	} else {
		log.Info("revision store disabled")
	}

	// Configuration source
	source, err := newSource(ctx, cfg)
	if err != nil {
		log.Fatalf("configuration source: %v", err)
	}

	// Core Services (Application Layer)
	configSvc := services.NewConfigService(revisionRepo, services.ConfigServiceOptions{
		AllowPartial: cfg.Validation.AllowPartial,
	})

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(configSvc, cfg.Strings.DefaultLocale)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/model-config")
	h.RegisterRoutes(api)

	router.GET("/healthz", h.Healthz)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	if source != nil {
		syncSvc := services.NewSyncService(source, configSvc, cfg.Source.PollInterval)
		g.Go(func() error {
			log.WithField("source", source.Name()).Info("starting configuration sync")
			return syncSvc.Run(gctx)
		})
	} else {
		log.Info("no configuration source, waiting for PUT /config")
	}

	g.Go(func() error {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
	log.Info("server stopped")
}

func newPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

func newSource(ctx context.Context, cfg *config.Config) (output.ConfigSource, error) {
	switch cfg.Source.Kind {
	case config.SourceFile:
		return filesource.NewFileSource(cfg.Source.Path, cfg.Source.Watch), nil
	case config.SourceConfigMap:
		clientset, err := kube.NewClientset(&cfg.Kubernetes)
		if err != nil {
			return nil, err
		}
		src := kube.NewConfigMapSource(clientset, cfg.Kubernetes.Namespace, cfg.Kubernetes.ConfigMap, cfg.Kubernetes.Key)
		if !cfg.Source.Watch {
			return fetchOnly{src}, nil
		}
		return src, nil
	case config.SourceS3:
		client, err := s3source.NewClient(ctx, &cfg.S3)
		if err != nil {
			return nil, err
		}
		return s3source.NewObjectSource(client, cfg.S3.Bucket, cfg.S3.Key), nil
	case config.SourceHTTP:
		return httpsource.NewSource(cfg.Source.URL, cfg.Source.Timeout), nil
	}
	return nil, nil
}

// fetchOnly hides the SourceWatcher side of a source.
type fetchOnly struct {
	output.ConfigSource
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
