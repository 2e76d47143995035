package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewMiniredisClient returns both an in-memory Redis server and a connected
// client. Both are closed when the test completes.
func NewMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close miniredis client: %v", err)
		}
	})

	return mr, client
}

// MiniredisURL starts an in-memory Redis server and returns its redis:// URL
func MiniredisURL(t *testing.T) string {
	t.Helper()

	return "redis://" + miniredis.RunT(t).Addr()
}
