package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ethpandaops/rfv/pkg/export"
	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateAnalysis runs the RFV pipeline over an uploaded ledger
// POST /api/v1/analyses
func (s *Server) CreateAnalysis(c fiber.Ctx) error {
	scores, err := parseScores(c)
	if err != nil {
		return err
	}

	preview, err := s.parsePreview(c)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	log := s.log.WithField("analysis", id)

	result, filename, err := s.analyze(c, log)
	if err != nil {
		return err
	}

	ctx := c.Context()

	// Encode eagerly so the export links resolve from the cache
	var key string
	for _, format := range []string{export.FormatXLSX, export.FormatCSV} {
		if _, key, err = s.memo.Encode(ctx, format, result.ReferenceDate, result.Customers); err != nil {
			return err
		}
	}

	exportName, err := s.filenames.Render(export.FilenameVars{
		Format:        export.FormatXLSX,
		ReferenceDate: result.ReferenceDate,
		Now:           time.Now(),
	})
	if err != nil {
		return err
	}

	segmented := rfv.Filter(result.Customers, scores)

	response := AnalysisResponse{
		ID:            id,
		File:          filename,
		ReferenceDate: result.ReferenceDate.Format(time.DateOnly),
		Transactions:  result.Transactions,
		Recency:       head(result.Recency, preview),
		Frequency:     head(result.Frequency, preview),
		Value:         head(result.Value, preview),
		Customers:     result.Customers,
		Quartiles:     result.Quartiles,
		ScoreOptions:  rfv.ScoreOptions(result.Customers),
		Segmented:     segmented,
		Distribution:  rfv.Distribution(result.Customers),
		ActionCounts:  rfv.ActionCounts(segmented),
		Dropped:       result.Dropped,
		Export: ExportLinks{
			Key:      key,
			Filename: exportName,
			XLSX:     "/api/v1/exports/" + key + "?format=" + export.FormatXLSX,
			CSV:      "/api/v1/exports/" + key + "?format=" + export.FormatCSV,
		},
	}

	log.WithFields(logrus.Fields{
		"customers": len(result.Customers),
		"segmented": len(segmented),
	}).Info("Analysis completed")

	return c.Status(fiber.StatusOK).JSON(response)
}

// ExportAnalysis runs the RFV pipeline and returns the full table as a file
// POST /api/v1/analyses/export
func (s *Server) ExportAnalysis(c fiber.Ctx) error {
	format, err := parseFormat(c)
	if err != nil {
		return err
	}

	result, _, err := s.analyze(c, s.log)
	if err != nil {
		return err
	}

	data, _, err := s.memo.Encode(c.Context(), format, result.ReferenceDate, result.Customers)
	if err != nil {
		return err
	}

	name, err := s.filenames.Render(export.FilenameVars{
		Format:        format,
		ReferenceDate: result.ReferenceDate,
		Now:           time.Now(),
	})
	if err != nil {
		return err
	}

	return sendExport(c, format, name, data)
}

// analyze parses the uploaded file and runs the pipeline. Malformed uploads
// are reported as bad requests.
func (s *Server) analyze(c fiber.Ctx, log logrus.FieldLogger) (*rfv.Result, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", ErrFileRequired
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "failed to open upload: "+err.Error())
	}
	defer func() { _ = f.Close() }()

	ctx := c.Context()

	txs, err := s.reader.Read(ctx, fh.Filename, f)
	if err != nil {
		if isContextErr(err) {
			return nil, "", err
		}

		log.WithError(err).WithField("file", fh.Filename).Warn("Rejected ledger upload")

		return nil, "", fiber.NewError(fiber.StatusBadRequest, "failed to read file: "+err.Error())
	}

	result, err := s.pipeline.Run(ctx, txs)
	if err != nil {
		if errors.Is(err, rfv.ErrEmptyLedger) {
			return nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return nil, "", err
	}

	return result, fh.Filename, nil
}

// parseScores reads the score filter. An absent parameter selects every score.
func parseScores(c fiber.Ctx) ([]string, error) {
	raw, present := c.Queries()["scores"]
	if !present {
		return nil, nil
	}

	scores := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		score := strings.ToUpper(strings.TrimSpace(part))
		if score == "" {
			continue
		}
		if !validScore(score) {
			return nil, ErrInvalidScore
		}
		scores = append(scores, score)
	}

	return scores, nil
}

func validScore(score string) bool {
	if len(score) != 3 {
		return false
	}

	for _, ch := range score {
		if ch < 'A' || ch > 'D' {
			return false
		}
	}

	return true
}

func (s *Server) parsePreview(c fiber.Ctx) (int, error) {
	raw := c.Query("preview")
	if raw == "" {
		return s.previewRows, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrInvalidPreview
	}

	return n, nil
}

func parseFormat(c fiber.Ctx) (string, error) {
	format := strings.ToLower(c.Query("format", export.FormatXLSX))
	if format != export.FormatXLSX && format != export.FormatCSV {
		return "", ErrInvalidFormat
	}

	return format, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
