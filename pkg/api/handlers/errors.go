package handlers

import "github.com/gofiber/fiber/v3"

// ErrFileRequired is returned when the upload has no file field
var ErrFileRequired = fiber.NewError(fiber.StatusBadRequest, `multipart field "file" is required`)

// ErrInvalidScore is returned when a score filter is not three letters from A to D
var ErrInvalidScore = fiber.NewError(fiber.StatusBadRequest, "invalid score filter, expected three letters from A to D")

// ErrInvalidPreview is returned when the preview size is not a non-negative integer
var ErrInvalidPreview = fiber.NewError(fiber.StatusBadRequest, "invalid preview size, expected a non-negative integer")

// ErrInvalidFormat is returned for export formats other than csv and xlsx
var ErrInvalidFormat = fiber.NewError(fiber.StatusBadRequest, "invalid export format, expected csv or xlsx")

// ErrInvalidExportKey is returned when an export key is not a content hash
var ErrInvalidExportKey = fiber.NewError(fiber.StatusBadRequest, "invalid export key")

// ErrExportNotFound is returned when an export is not cached
var ErrExportNotFound = fiber.NewError(fiber.StatusNotFound, "export not found")
