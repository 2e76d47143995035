package export

import (
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameRenderer(t *testing.T) {
	vars := FilenameVars{
		Format:        FormatXLSX,
		ReferenceDate: time.Date(2021, time.December, 9, 0, 0, 0, 0, time.UTC),
		Now:           time.Date(2026, time.October, 15, 8, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		template string
		expected string
	}{
		{
			name:     "default",
			template: "RFV_segmentado.{{ .Format }}",
			expected: "RFV_segmentado.xlsx",
		},
		{
			name:     "sprig date",
			template: `rfv_{{ .ReferenceDate | date "20060102" }}.{{ .Format }}`,
			expected: "rfv_20211209.xlsx",
		},
		{
			name:     "sprig string functions",
			template: `{{ "rfv report" | replace " " "-" | upper }}_{{ .Now.Format "150405" }}.{{ .Format }}`,
			expected: "RFV-REPORT_083000.xlsx",
		},
		{
			name:     "directories are stripped",
			template: "../../etc/{{ .Format }}",
			expected: "xlsx",
		},
		{
			name:     "empty output falls back",
			template: "{{ if false }}x{{ end }}",
			expected: "RFV_segmentado.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilenameRenderer(tt.template)
			require.NoError(t, err)

			name, err := r.Render(vars)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, defaults.Set(cfg))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Sheet1", cfg.SheetName)
	assert.Equal(t, time.Hour, cfg.CacheTTL)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "missing sheet", mutate: func(c *Config) { c.SheetName = "" }, wantErr: ErrSheetNameRequired},
		{name: "long sheet", mutate: func(c *Config) { c.SheetName = "a very long worksheet name indeed" }, wantErr: ErrSheetNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *cfg
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tt.wantErr)
		})
	}

	bad := *cfg
	bad.FilenameTemplate = "{{ .Format"
	assert.Error(t, bad.Validate())
}
