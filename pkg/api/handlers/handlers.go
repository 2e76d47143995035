// Package handlers implements the request handlers of the RFV API.
package handlers

import (
	"github.com/ethpandaops/rfv/pkg/export"
	"github.com/ethpandaops/rfv/pkg/ledger"
	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// DefaultPreviewRows is the number of intermediate aggregate rows returned
// when the request does not ask for a preview size
const DefaultPreviewRows = 5

// Server serves RFV analyses and exports
type Server struct {
	reader      *ledger.Reader
	pipeline    *rfv.Pipeline
	memo        *export.Memoizer
	filenames   *export.FilenameRenderer
	previewRows int
	log         logrus.FieldLogger
}

// NewServer creates a new API server instance
func NewServer(reader *ledger.Reader, pipeline *rfv.Pipeline, memo *export.Memoizer, filenames *export.FilenameRenderer, previewRows int, log logrus.FieldLogger) *Server {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}

	return &Server{
		reader:      reader,
		pipeline:    pipeline,
		memo:        memo,
		filenames:   filenames,
		previewRows: previewRows,
		log:         log.WithField("component", "api.handlers"),
	}
}

// Register mounts the handlers on a router group
func (s *Server) Register(router fiber.Router) {
	router.Post("/analyses", s.CreateAnalysis)
	router.Post("/analyses/export", s.ExportAnalysis)
	router.Get("/exports/:key", s.GetExport)
	router.Get("/actions", s.ListActions)
}
