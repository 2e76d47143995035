package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ethpandaops/rfv/pkg/observability"
	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedFormat is returned for formats other than csv and xlsx
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Memoizer caches encodings by table content so repeated requests for the
// same table skip re-encoding
type Memoizer struct {
	cache Cache
	sheet string
	log   logrus.FieldLogger
}

// NewMemoizer creates a memoizing encoder on top of a cache
func NewMemoizer(cache Cache, sheet string, log logrus.FieldLogger) *Memoizer {
	return &Memoizer{
		cache: cache,
		sheet: sheet,
		log:   log.WithField("component", "export.memoizer"),
	}
}

// ContentKey hashes the reference date and table content. Equal analyses
// share a key.
func ContentKey(ref time.Time, customers []rfv.Customer) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s\x1e", ref.UTC().Format(time.RFC3339))
	for i := range customers {
		c := &customers[i]
		_, _ = fmt.Fprintf(h, "%s\x1f%d\x1f%d\x1f%s\x1f%s\x1f%s\x1e",
			c.CustomerID, c.RecencyDays, c.Frequency, c.Value.String(), c.Score, c.Action)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func cacheKey(format, key string) string {
	return format + ":" + key
}

func referenceKey(key string) string {
	return "ref:" + key
}

// Encode returns the table encoded in format along with its content key. The
// reference date is remembered under the same key for later lookups.
func (m *Memoizer) Encode(ctx context.Context, format string, ref time.Time, customers []rfv.Customer) (data []byte, key string, err error) {
	if format != FormatCSV && format != FormatXLSX {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	key = ContentKey(ref, customers)

	if err := m.cache.Set(ctx, referenceKey(key), []byte(ref.UTC().Format(time.RFC3339))); err != nil {
		observability.RecordError("export", "cache_set")
		m.log.WithError(err).WithField("key", key).Warn("Failed to write export reference date")
	}

	data, ok, err := m.cache.Get(ctx, cacheKey(format, key))
	if err != nil {
		observability.RecordError("export", "cache_get")
		m.log.WithError(err).WithField("key", key).Warn("Failed to read export cache")
	}
	if ok {
		observability.RecordExportCacheHit(format)
		return data, key, nil
	}

	observability.RecordExportCacheMiss(format)

	switch format {
	case FormatXLSX:
		data, err = EncodeXLSX(customers, m.sheet)
	default:
		data, err = EncodeCSV(customers)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode %s export: %w", format, err)
	}

	if err := m.cache.Set(ctx, cacheKey(format, key), data); err != nil {
		observability.RecordError("export", "cache_set")
		m.log.WithError(err).WithField("key", key).Warn("Failed to write export cache")
	}

	return data, key, nil
}

// Lookup returns a previously encoded export
func (m *Memoizer) Lookup(ctx context.Context, format, key string) ([]byte, bool, error) {
	if format != FormatCSV && format != FormatXLSX {
		return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	data, ok, err := m.cache.Get(ctx, cacheKey(format, key))
	if err != nil {
		return nil, false, err
	}

	if ok {
		observability.RecordExportCacheHit(format)
	} else {
		observability.RecordExportCacheMiss(format)
	}

	return data, ok, nil
}

// ReferenceDate returns the reference date of the analysis an export key was
// encoded from
func (m *Memoizer) ReferenceDate(ctx context.Context, key string) (time.Time, bool, error) {
	data, ok, err := m.cache.Get(ctx, referenceKey(key))
	if err != nil || !ok {
		return time.Time{}, false, err
	}

	ref, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid cached reference date for %s: %w", key, err)
	}

	return ref, true, nil
}
