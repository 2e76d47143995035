package engine

import (
	"context"
	"testing"
	"time"

	"github.com/ethpandaops/rfv/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

func localConfig(t *testing.T) *Config {
	t.Helper()

	cfg := newTestConfig(t)
	cfg.MetricsAddr = "127.0.0.1:0"
	cfg.HealthCheckAddr = "127.0.0.1:0"
	cfg.API.Addr = "127.0.0.1:0"
	cfg.ShutdownTimeout = 2 * time.Second

	return cfg
}

func TestNewService(t *testing.T) {
	t.Run("memory cache", func(t *testing.T) {
		svc, err := NewService(newTestLogger(), localConfig(t))
		require.NoError(t, err)
		assert.Nil(t, svc.redisClient)
	})

	t.Run("redis cache", func(t *testing.T) {
		cfg := localConfig(t)
		cfg.Redis.URL = testutil.MiniredisURL(t)

		svc, err := NewService(newTestLogger(), cfg)
		require.NoError(t, err)
		require.NotNil(t, svc.redisClient)
		t.Cleanup(func() { _ = svc.redisClient.Close() })
	})

	t.Run("invalid configuration", func(t *testing.T) {
		cfg := localConfig(t)
		cfg.MetricsAddr = ""

		_, err := NewService(newTestLogger(), cfg)
		assert.ErrorIs(t, err, ErrMetricsAddrRequired)
	})
}

func TestService_RunStopsOnCancel(t *testing.T) {
	cfg := localConfig(t)
	cfg.Redis.URL = testutil.MiniredisURL(t)

	svc, err := NewService(newTestLogger(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestService_StartFailsWithoutRedis(t *testing.T) {
	cfg := localConfig(t)
	cfg.Redis.URL = "redis://127.0.0.1:1"

	svc, err := NewService(newTestLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.redisClient.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, svc.Start(ctx))
}
