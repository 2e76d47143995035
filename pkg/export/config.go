package export

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Config errors
var (
	ErrSheetNameRequired = errors.New("export sheet name is required")
	ErrSheetNameTooLong  = errors.New("export sheet name must be at most 31 characters")
)

// Config represents export configuration
type Config struct {
	SheetName        string        `yaml:"sheetName" default:"Sheet1"`
	FilenameTemplate string        `yaml:"filenameTemplate" default:"RFV_segmentado.{{ .Format }}"`
	CacheTTL         time.Duration `yaml:"cacheTTL" default:"1h"`
}

// Validate validates the export configuration
func (c *Config) Validate() error {
	if c.SheetName == "" {
		return ErrSheetNameRequired
	}

	if utf8.RuneCountInString(c.SheetName) > 31 {
		return fmt.Errorf("%w: %q", ErrSheetNameTooLong, c.SheetName)
	}

	if _, err := NewFilenameRenderer(c.FilenameTemplate); err != nil {
		return err
	}

	return nil
}
