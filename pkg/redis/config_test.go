package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "disabled", config: Config{}},
		{name: "valid url", config: Config{URL: "redis://localhost:6379/0", Prefix: "rfv"}},
		{name: "invalid scheme", config: Config{URL: "http://localhost:6379"}, wantErr: ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_ValidateFillsPrefix(t *testing.T) {
	cfg := Config{URL: "redis://localhost:6379"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "rfv", cfg.Prefix)
}

func TestConfig_PrefixKey(t *testing.T) {
	assert.Equal(t, "rfv:export:", (&Config{Prefix: "rfv"}).PrefixKey("export:"))
	assert.Equal(t, "export:", (&Config{}).PrefixKey("export:"))
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(&Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()).Err())

	_, err = New(&Config{URL: "://nope"})
	assert.ErrorIs(t, err, ErrInvalidURL)
}
