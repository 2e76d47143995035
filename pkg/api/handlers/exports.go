package handlers

import (
	"encoding/hex"
	"time"

	"github.com/ethpandaops/rfv/pkg/export"
	"github.com/gofiber/fiber/v3"
)

// GetExport serves a memoized export by content key
// GET /api/v1/exports/:key
func (s *Server) GetExport(c fiber.Ctx) error {
	format, err := parseFormat(c)
	if err != nil {
		return err
	}

	key := c.Params("key")
	if decoded, decodeErr := hex.DecodeString(key); decodeErr != nil || len(decoded) != 32 {
		return ErrInvalidExportKey
	}

	data, ok, err := s.memo.Lookup(c.Context(), format, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrExportNotFound
	}

	ref, _, err := s.memo.ReferenceDate(c.Context(), key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to read export reference date")
	}

	name, err := s.filenames.Render(export.FilenameVars{
		Format:        format,
		ReferenceDate: ref,
		Now:           time.Now(),
	})
	if err != nil {
		return err
	}

	return sendExport(c, format, name, data)
}

func sendExport(c fiber.Ctx, format, name string, data []byte) error {
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, export.ContentType(format))

	return c.Status(fiber.StatusOK).Send(data)
}
