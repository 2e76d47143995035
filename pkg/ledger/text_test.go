package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	dec9 := time.Date(2021, time.December, 9, 0, 0, 0, 0, time.UTC)
	jan12 := time.Date(2021, time.January, 12, 0, 0, 0, 0, time.UTC)
	dec1 := time.Date(2021, time.December, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		input       string
		order       dateOrder
		spreadsheet bool
		expected    time.Time
		wantErr     bool
	}{
		{name: "iso date", input: "2021-12-09", expected: dec9},
		{name: "rfc3339", input: "2021-12-09T00:00:00Z", expected: dec9},
		{name: "iso date time", input: "2021-12-09 14:30:00", expected: dec9.Add(14*time.Hour + 30*time.Minute)},
		{name: "slashed iso", input: "2021/12/09", expected: dec9},
		{name: "ambiguous defaults to month-first", input: "12/01/2021", expected: dec1},
		{name: "ambiguous month-first", input: "12/01/2021", order: orderMonthFirst, expected: dec1},
		{name: "ambiguous day-first", input: "12/01/2021", order: orderDayFirst, expected: jan12},
		{name: "unambiguous day-first", input: "25/12/2021", expected: time.Date(2021, time.December, 25, 0, 0, 0, 0, time.UTC)},
		{name: "day-first rejected in month-first file", input: "25/12/2021", order: orderMonthFirst, wantErr: true},
		{name: "month-first rejected in day-first file", input: "12/25/2021", order: orderDayFirst, wantErr: true},
		{name: "dotted", input: "09.12.2021", expected: dec9},
		{name: "spreadsheet serial", input: "44539", spreadsheet: true, expected: dec9},
		{name: "serial in text", input: "44539", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "words", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input, tt.order, tt.spreadsheet)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}
}

func TestRequiredOrder(t *testing.T) {
	assert.Equal(t, orderUnknown, requiredOrder("2021-12-09"))
	assert.Equal(t, orderUnknown, requiredOrder("12/01/2021"))
	assert.Equal(t, orderUnknown, requiredOrder("garbage"))
	assert.Equal(t, orderDayFirst, requiredOrder("13/01/2021"))
	assert.Equal(t, orderDayFirst, requiredOrder("09.12.2021"))
	assert.Equal(t, orderMonthFirst, requiredOrder("01/13/2021"))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "", expected: "0"},
		{input: "12", expected: "12"},
		{input: "12.5", expected: "12.5"},
		{input: "12,5", expected: "12.5"},
		{input: "1.234,56", expected: "1234.56"},
		{input: "1,234.56", expected: "1234.56"},
		{input: "1,234,567", expected: "1234567"},
		{input: " 1 234,5 ", expected: "1234.5"},
		{input: "-3.25", expected: "-3.25"},
		{input: "R$ 10", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseValue(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter("a,b,c\n1;2;3"))
	assert.Equal(t, ';', sniffDelimiter("a;b;c\n"))
	assert.Equal(t, '\t', sniffDelimiter("a\tb\tc"))
	assert.Equal(t, ';', sniffDelimiter("\"a,b\";c;d"))
	assert.Equal(t, ',', sniffDelimiter("single"))
}

func TestDecodeText(t *testing.T) {
	latin := []byte{'S', 0xe3, 'o'}

	got, err := decodeText(latin, EncodingAuto)
	require.NoError(t, err)
	assert.Equal(t, "São", got)

	got, err = decodeText([]byte("São"), EncodingAuto)
	require.NoError(t, err)
	assert.Equal(t, "São", got)

	_, err = decodeText(latin, "ebcdic")
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}
