// Package ledger reads purchase ledgers uploaded as delimited text or XLSX.
package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ethpandaops/rfv/pkg/observability"
	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Upload formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

//nolint:gochecknoglobals // ZIP local file header, the container of XLSX files
var zipMagic = []byte("PK\x03\x04")

// Reader parses uploads into transactions
type Reader struct {
	config *Config
	log    logrus.FieldLogger
}

// NewReader creates a new ledger reader
func NewReader(cfg *Config, log logrus.FieldLogger) *Reader {
	return &Reader{
		config: cfg,
		log:    log.WithField("component", "ledger.reader"),
	}
}

// DetectFormat picks the upload format from the file name, falling back to
// the content when the extension is unknown
func DetectFormat(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".csv", ".tsv", ".txt":
		return FormatCSV
	}

	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX
	}

	return FormatCSV
}

// Read parses an upload. Any malformed row fails the whole upload.
func (r *Reader) Read(ctx context.Context, name string, src io.Reader) ([]rfv.Transaction, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	format := DetectFormat(name, data)

	txs, err := r.parse(ctx, format, data)
	if err != nil {
		observability.RecordLedgerParseError(format)
		r.log.WithError(err).WithFields(logrus.Fields{
			"file":   name,
			"format": format,
		}).Debug("Failed to parse ledger")

		return nil, err
	}

	observability.RecordLedgerRows(format, len(txs))

	r.log.WithFields(logrus.Fields{
		"file":   name,
		"format": format,
		"rows":   len(txs),
	}).Debug("Parsed ledger")

	return txs, nil
}

func (r *Reader) parse(ctx context.Context, format string, data []byte) ([]rfv.Transaction, error) {
	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatXLSX:
		rows, err = readSheet(data)
	default:
		rows, err = r.readDelimited(data)
	}
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.transactions(rows, format == FormatXLSX)
}

func (r *Reader) readDelimited(data []byte) ([][]string, error) {
	text, err := decodeText(data, r.config.Encoding)
	if err != nil {
		return nil, err
	}

	text = strings.TrimPrefix(text, "\ufeff")

	delim := sniffDelimiter(text)
	if r.config.Delimiter != "" {
		delim = []rune(r.config.Delimiter)[0]
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFile, err)
	}

	return rows, nil
}

func readSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFile, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrMalformedFile, sheets[0], err)
	}

	return rows, nil
}

type columnIndex struct {
	customerID, purchaseDate, purchaseCode, totalValue int
}

func (r *Reader) resolveColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	lookup := func(name string) (int, error) {
		if i, ok := positions[normalizeHeader(name)]; ok {
			return i, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}

	var (
		idx columnIndex
		err error
	)

	cols := r.config.Columns
	if idx.customerID, err = lookup(cols.CustomerID); err != nil {
		return idx, err
	}
	if idx.purchaseDate, err = lookup(cols.PurchaseDate); err != nil {
		return idx, err
	}
	if idx.purchaseCode, err = lookup(cols.PurchaseCode); err != nil {
		return idx, err
	}
	if idx.totalValue, err = lookup(cols.TotalValue); err != nil {
		return idx, err
	}

	return idx, nil
}

func (r *Reader) transactions(rows [][]string, spreadsheet bool) ([]rfv.Transaction, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyLedger
	}

	idx, err := r.resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	cols := r.config.Columns

	order, err := r.dateOrder(rows, idx.purchaseDate)
	if err != nil {
		return nil, err
	}

	txs := make([]rfv.Transaction, 0, len(rows)-1)

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		line := i + 2

		date, err := parseDate(cell(row, idx.purchaseDate), order, spreadsheet)
		if err != nil {
			return nil, &ParseError{Line: line, Column: cols.PurchaseDate, Err: err}
		}

		value, err := parseValue(cell(row, idx.totalValue))
		if err != nil {
			return nil, &ParseError{Line: line, Column: cols.TotalValue, Err: err}
		}

		txs = append(txs, rfv.Transaction{
			CustomerID:   cell(row, idx.customerID),
			PurchaseDate: date,
			PurchaseCode: cell(row, idx.purchaseCode),
			TotalValue:   value,
		})
	}

	if len(txs) == 0 {
		return nil, ErrEmptyLedger
	}

	return txs, nil
}

// dateOrder settles the day position of the file's dates from the first date
// that can only be read one way. A later date that can only be read the other
// way fails the upload.
func (r *Reader) dateOrder(rows [][]string, col int) (dateOrder, error) {
	order := orderUnknown

	for i, row := range rows[1:] {
		required := requiredOrder(cell(row, col))
		if required == orderUnknown {
			continue
		}

		if order == orderUnknown {
			order = required
			continue
		}

		if required != order {
			return orderUnknown, &ParseError{
				Line:   i + 2,
				Column: r.config.Columns.PurchaseDate,
				Err:    fmt.Errorf("%w: %w: %q is %s but earlier dates are %s", ErrInvalidDate, ErrMixedDateOrder, cell(row, col), required, order),
			}
		}
	}

	return order, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}
