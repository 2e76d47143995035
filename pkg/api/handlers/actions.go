package handlers

import (
	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/gofiber/fiber/v3"
)

// ListActions returns the fixed score to action table
// GET /api/v1/actions
func (s *Server) ListActions(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(ActionsResponse{
		Actions: rfv.Actions(),
		Default: rfv.DefaultAction,
	})
}
