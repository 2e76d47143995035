// Package export encodes RFV tables as CSV or XLSX and memoizes the encodings.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Column headers of the exported table
const (
	ColumnCustomerID     = "ID_cliente"
	ColumnRecency        = "Recencia"
	ColumnFrequency      = "Frequência"
	ColumnValue          = "Valor"
	ColumnRecencyGrade   = "R_quartil"
	ColumnFrequencyGrade = "F_quartil"
	ColumnValueGrade     = "V_quartil"
	ColumnScore          = "RFV_Score"
	ColumnAction         = "acoes de marketing/crm"
)

// Header lists the exported columns in order
//
//nolint:gochecknoglobals // Fixed export layout
var Header = []string{
	ColumnCustomerID,
	ColumnRecency,
	ColumnFrequency,
	ColumnValue,
	ColumnRecencyGrade,
	ColumnFrequencyGrade,
	ColumnValueGrade,
	ColumnScore,
	ColumnAction,
}

// ContentType returns the MIME type of an export format
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv; charset=utf-8"
}

// EncodeCSV writes the table as UTF-8 CSV with a header row
func EncodeCSV(customers []rfv.Customer) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}

	for i := range customers {
		c := &customers[i]
		record := []string{
			c.CustomerID,
			strconv.Itoa(c.RecencyDays),
			strconv.Itoa(c.Frequency),
			c.Value.String(),
			string(c.RecencyGrade),
			string(c.FrequencyGrade),
			string(c.ValueGrade),
			c.Score,
			c.Action,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodeXLSX writes the table to a single-sheet workbook
func EncodeXLSX(customers []rfv.Customer, sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}

	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for i := range customers {
		c := &customers[i]

		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		row := []interface{}{
			c.CustomerID,
			c.RecencyDays,
			c.Frequency,
			valueCell(c.Value),
			string(c.RecencyGrade),
			string(c.FrequencyGrade),
			string(c.ValueGrade),
			c.Score,
			c.Action,
		}
		if err := sw.SetRow(cellName, row); err != nil {
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// valueCell keeps the value numeric when a float64 holds it exactly and
// falls back to its decimal text otherwise
func valueCell(v decimal.Decimal) interface{} {
	f := v.InexactFloat64()
	if decimal.NewFromFloat(f).Equal(v) {
		return f
	}

	return v.String()
}
