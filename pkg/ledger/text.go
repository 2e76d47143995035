package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// dateOrder is the position of the day in slash or dot separated dates
type dateOrder int

const (
	orderUnknown dateOrder = iota
	orderMonthFirst
	orderDayFirst
)

func (o dateOrder) String() string {
	switch o {
	case orderMonthFirst:
		return "month-first"
	case orderDayFirst:
		return "day-first"
	default:
		return "unknown"
	}
}

//nolint:gochecknoglobals // Accepted purchase date layouts
var (
	isoLayouts = []string{
		time.RFC3339,
		time.DateOnly,
		time.DateTime,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006/01/02",
		"2006/01/02 15:04:05",
	}
	monthFirstLayouts = []string{
		"01/02/2006",
		"01/02/2006 15:04:05",
		"1/2/2006",
		"1/2/2006 15:04",
		"1/2/2006 15:04:05",
	}
	dayFirstLayouts = []string{
		"02/01/2006",
		"02/01/2006 15:04:05",
		"2/1/2006",
		"2/1/2006 15:04",
		"02-01-2006",
		"02.01.2006",
	}
)

func parseWith(layouts []string, s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// requiredOrder reports the only day position a date can be read with.
// ISO dates, ambiguous dates and unparseable text require none.
func requiredOrder(s string) dateOrder {
	if _, ok := parseWith(isoLayouts, s); ok {
		return orderUnknown
	}

	_, monthFirst := parseWith(monthFirstLayouts, s)
	_, dayFirst := parseWith(dayFirstLayouts, s)

	switch {
	case monthFirst && !dayFirst:
		return orderMonthFirst
	case dayFirst && !monthFirst:
		return orderDayFirst
	default:
		return orderUnknown
	}
}

func decodeText(data []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case EncodingUTF8:
		return string(data), nil
	case EncodingLatin1:
		return decodeWith(charmap.ISO8859_1, data)
	case EncodingWindows1252:
		return decodeWith(charmap.Windows1252, data)
	case EncodingAuto, "":
		if utf8.Valid(data) {
			return string(data), nil
		}
		return decodeWith(charmap.ISO8859_1, data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}

func decodeWith(cm *charmap.Charmap, data []byte) (string, error) {
	out, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", cm.String(), err)
	}

	return string(out), nil
}

// sniffDelimiter picks the most frequent of ',', ';' and tab outside quotes on
// the header line
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}

	counts := map[rune]int{',': 0, ';': 0, '\t': 0}
	quoted := false

	for _, ch := range line {
		if ch == '"' {
			quoted = !quoted
			continue
		}
		if _, ok := counts[ch]; ok && !quoted {
			counts[ch]++
		}
	}

	best := ','
	for _, candidate := range []rune{';', '\t'} {
		if counts[candidate] > counts[best] {
			best = candidate
		}
	}

	return best
}

// parseDate reads a purchase date. Dates that fit both day positions are
// read in the given order, month-first when the order is unknown.
func parseDate(s string, order dateOrder, spreadsheet bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	if t, ok := parseWith(isoLayouts, s); ok {
		return t, nil
	}

	if order != orderDayFirst {
		if t, ok := parseWith(monthFirstLayouts, s); ok {
			return t, nil
		}
	}

	if order != orderMonthFirst {
		if t, ok := parseWith(dayFirstLayouts, s); ok {
			return t, nil
		}
	}

	// Spreadsheet dates are stored as serial day numbers
	if spreadsheet {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t.UTC(), nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// parseValue reads a decimal amount. Empty cells count as zero. A single
// comma after any dot is a decimal comma; other commas group thousands.
func parseValue(s string) (decimal.Decimal, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), "\u00a0", "")
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return decimal.Zero, nil
	}

	dot := strings.LastIndexByte(raw, '.')
	comma := strings.LastIndexByte(raw, ',')

	switch {
	case comma > dot && strings.Count(raw, ",") == 1:
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	case comma >= 0:
		raw = strings.ReplaceAll(raw, ",", "")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}

	return d, nil
}
