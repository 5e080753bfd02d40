// Package file provides the download handler for stored uploads.
package file

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pension-board/retiree-intake/internal/config"
	controller "github.com/pension-board/retiree-intake/internal/db/controller/submission"
	"github.com/pension-board/retiree-intake/internal/filecodec"
	"github.com/pension-board/retiree-intake/internal/web/handler"
)

const (
	// Path is the base path of the files API.
	Path = handler.APIPath + "/files"
)

// Service is the file download handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the file download handler.
var Handler = Service{}

// Init initializes the file handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path+"/:id<int>", s.Download)

	return nil
}

// Download handles GET /api/files/:id. It looks the file up first, so an
// unknown id is always a 404 and never a decode error; corrupt or missing
// stored content on a known id is a distinct 422.
func (s *Service) Download(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid file id"})
	}

	file, err := controller.GetFile(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrFileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to load file")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to download file",
		})
	}

	content, err := filecodec.Decode(file.Content)
	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("stored file content is corrupt")

		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Stored file content is missing or corrupt",
		})
	}

	c.Set(fiber.HeaderContentType, filecodec.MimeType(file.OriginalName))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.OriginalName+`"`)

	return c.Send(content)
}
