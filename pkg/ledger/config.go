package ledger

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Config errors
var (
	ErrColumnNameRequired = errors.New("ledger column name is required")
	ErrDuplicateColumn    = errors.New("ledger column mapped twice")
	ErrInvalidDelimiter   = errors.New("delimiter must be a single character")
)

// Supported text encodings
const (
	EncodingAuto        = "auto"
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

// Columns maps the ledger fields to header names in the uploaded file
type Columns struct {
	CustomerID   string `yaml:"customerId" default:"ID_cliente"`
	PurchaseDate string `yaml:"purchaseDate" default:"DiaCompra"`
	PurchaseCode string `yaml:"purchaseCode" default:"CodigoCompra"`
	TotalValue   string `yaml:"totalValue" default:"ValorTotal"`
}

// Config controls how uploads are parsed
type Config struct {
	Columns Columns `yaml:"columns"`
	// Encoding of delimited text uploads. auto picks UTF-8 when the content
	// is valid UTF-8 and ISO-8859-1 otherwise.
	Encoding string `yaml:"encoding" default:"auto" validate:"oneof=auto utf-8 latin1 windows-1252"`
	// Delimiter of text uploads. Sniffed from the header line when empty.
	Delimiter string `yaml:"delimiter"`
}

// Validate validates the ledger configuration
func (c *Config) Validate() error {
	seen := make(map[string]bool, 4)
	for _, name := range []string{c.Columns.CustomerID, c.Columns.PurchaseDate, c.Columns.PurchaseCode, c.Columns.TotalValue} {
		key := normalizeHeader(name)
		if key == "" {
			return ErrColumnNameRequired
		}
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[key] = true
	}

	switch strings.ToLower(c.Encoding) {
	case EncodingAuto, EncodingUTF8, EncodingLatin1, EncodingWindows1252:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, c.Encoding)
	}

	if c.Delimiter != "" && utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidDelimiter, c.Delimiter)
	}

	return nil
}
