package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // pprof is intentionally exposed when pprofAddr is configured
	"os/signal"
	"syscall"
	"time"

	"github.com/ethpandaops/rfv/pkg/api"
	"github.com/ethpandaops/rfv/pkg/api/handlers"
	"github.com/ethpandaops/rfv/pkg/export"
	"github.com/ethpandaops/rfv/pkg/ledger"
	"github.com/ethpandaops/rfv/pkg/observability"
	"github.com/ethpandaops/rfv/pkg/redis"
	"github.com/ethpandaops/rfv/pkg/rfv"
	r "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Service encapsulates the RFV application
type Service struct {
	config *Config
	log    logrus.FieldLogger

	api api.Service

	// Servers
	healthServer *http.Server
	pprofServer  *http.Server

	redisClient *r.Client
}

// NewService creates a new RFV application
func NewService(log logrus.FieldLogger, cfg *Config) (*Service, error) {
	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var (
		cache       export.Cache
		redisClient *r.Client
	)

	if cfg.Redis.Enabled() {
		client, err := redis.New(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}

		redisClient = client
		cache = export.NewRedisCache(client, cfg.Redis.PrefixKey("export:"), cfg.Export.CacheTTL)
	} else {
		cache = export.NewMemoryCache()
	}

	filenames, err := export.NewFilenameRenderer(cfg.Export.FilenameTemplate)
	if err != nil {
		return nil, err
	}

	server := handlers.NewServer(
		ledger.NewReader(&cfg.Ledger, log),
		rfv.NewPipeline(log),
		export.NewMemoizer(cache, cfg.Export.SheetName, log),
		filenames,
		cfg.API.PreviewRows,
		log,
	)

	return &Service{
		config:      cfg,
		log:         log.WithField("service", "engine"),
		api:         api.NewService(&cfg.API, server, log),
		redisClient: redisClient,
	}, nil
}

// Run starts every server and blocks until ctx is canceled or a termination
// signal arrives, then shuts down
func (a *Service) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	// Wait for shutdown signal
	g.Go(func() error {
		<-ctx.Done()

		return a.Stop()
	})

	return g.Wait()
}

// Start initializes and starts the application
func (a *Service) Start(ctx context.Context) error {
	a.log.Info("Starting RFV service...")

	if a.redisClient != nil {
		if err := a.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	// Start metrics server
	observability.StartMetricsServer(a.log, a.config.MetricsAddr)

	// Start health check server if configured
	if a.config.HealthCheckAddr != "" {
		a.startHealthCheck()
	}

	// Start pprof server if configured
	if a.config.PProfAddr != "" {
		a.startPProf()
	}

	// Start API service
	if err := a.api.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API service: %w", err)
	}

	a.log.Info("RFV service started successfully")

	return nil
}

// Stop gracefully shuts down the application
func (a *Service) Stop() error {
	a.log.Info("Starting graceful shutdown...")

	// Create a timeout context for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	// Helper function to stop a service
	stopService := func(name string, stopFunc func() error) {
		if err := stopFunc(); err != nil {
			a.log.WithError(err).Errorf("Failed to stop %s", name)
		}
	}

	// 1. Stop API (finish in-flight requests)
	if a.api != nil {
		stopService("API service", a.api.Stop)
	}

	// 2. Close Redis (now safe, nothing is using it)
	if a.redisClient != nil {
		stopService("Redis client", a.redisClient.Close)
	}

	// Stop HTTP servers
	if a.healthServer != nil {
		stopService("health check server", func() error { return a.healthServer.Shutdown(ctx) })
	}
	if a.pprofServer != nil {
		stopService("pprof server", func() error { return a.pprofServer.Shutdown(ctx) })
	}

	stopService("metrics server", func() error { return observability.StopMetricsServer(ctx) })

	a.log.Info("RFV service stopped gracefully")

	return nil
}

func (a *Service) startHealthCheck() {
	a.log.WithField("addr", a.config.HealthCheckAddr).Info("Starting health check server")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, req *http.Request) {
		if a.redisClient != nil {
			if err := a.redisClient.Ping(req.Context()).Err(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("redis unavailable"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	a.healthServer = &http.Server{
		Addr:              a.config.HealthCheckAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := a.healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("Health check server failed")
		}
	}()
}

func (a *Service) startPProf() {
	a.log.WithField("addr", a.config.PProfAddr).Info("Starting pprof server")

	a.pprofServer = &http.Server{
		Addr:              a.config.PProfAddr,
		ReadHeaderTimeout: 120 * time.Second,
	}

	go func() {
		if err := a.pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("Pprof server failed")
		}
	}()
}
