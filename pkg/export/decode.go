package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidExport is returned when an exported table cannot be read back
var ErrInvalidExport = errors.New("invalid RFV export")

// DecodeCSV reads back a table written by EncodeCSV
func DecodeCSV(data []byte) ([]rfv.Customer, error) {
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}

	return decodeRows(rows)
}

// DecodeXLSX reads back a workbook written by EncodeXLSX
func DecodeXLSX(data []byte) ([]rfv.Customer, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrInvalidExport)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}

	return decodeRows(rows)
}

func decodeRows(rows [][]string) ([]rfv.Customer, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidExport)
	}

	pos := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		pos[strings.TrimSpace(h)] = i
	}

	for _, h := range Header {
		if _, ok := pos[h]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidExport, h)
		}
	}

	customers := make([]rfv.Customer, 0, len(rows)-1)

	for i, row := range rows[1:] {
		get := func(col string) string {
			if p := pos[col]; p < len(row) {
				return strings.TrimSpace(row[p])
			}
			return ""
		}

		recency, err := strconv.Atoi(get(ColumnRecency))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: recency: %w", ErrInvalidExport, i+2, err)
		}

		frequency, err := strconv.Atoi(get(ColumnFrequency))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: frequency: %w", ErrInvalidExport, i+2, err)
		}

		value, err := decimal.NewFromString(get(ColumnValue))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: value: %w", ErrInvalidExport, i+2, err)
		}

		customers = append(customers, rfv.Customer{
			CustomerID:     get(ColumnCustomerID),
			RecencyDays:    recency,
			Frequency:      frequency,
			Value:          value,
			RecencyGrade:   rfv.Grade(get(ColumnRecencyGrade)),
			FrequencyGrade: rfv.Grade(get(ColumnFrequencyGrade)),
			ValueGrade:     rfv.Grade(get(ColumnValueGrade)),
			Score:          get(ColumnScore),
			Action:         get(ColumnAction),
		})
	}

	return customers, nil
}
