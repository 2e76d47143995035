// Package observability provides observability utilities
package observability

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//nolint:gochecknoglobals // Singleton pattern for metrics server
var (
	metricsServerInstance *http.Server
	mu                    sync.Mutex
)

// StartMetricsServer starts a Prometheus metrics server if it hasn't been started already.
func StartMetricsServer(log logrus.FieldLogger, addr string) {
	mu.Lock()
	defer mu.Unlock()

	if metricsServerInstance != nil {
		return
	}

	sm := http.NewServeMux()
	sm.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 15 * time.Second,
		Handler:           sm,
	}
	metricsServerInstance = srv

	go func() {
		log.WithField("addr", addr).Info("Starting metrics server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server failed")
		}
	}()
}

// StopMetricsServer shuts the metrics server down, allowing it to be started again.
func StopMetricsServer(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if metricsServerInstance == nil {
		return nil
	}

	err := metricsServerInstance.Shutdown(ctx)
	metricsServerInstance = nil

	return err
}
