// Package export provides the spreadsheet and PDF export handlers.
package export

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pension-board/retiree-intake/internal/config"
	controller "github.com/pension-board/retiree-intake/internal/db/controller/submission"
	renderer "github.com/pension-board/retiree-intake/internal/export"
	"github.com/pension-board/retiree-intake/internal/web/handler"
	"github.com/pension-board/retiree-intake/internal/web/handler/api/submission"
)

const (
	// PathExcel is the spreadsheet export path.
	PathExcel = submission.Path + "/export"

	// PathPDF is the PDF export path.
	PathPDF = submission.Path + "/export.pdf"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Service is the export handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the export handler.
var Handler = Service{}

// Init initializes the export handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(PathExcel, s.Excel)
	app.Get(PathPDF, s.PDF)

	return nil
}

// records loads every submission and flattens it into the renderer view.
// Exports iterate the full set in one pass; there is no pagination.
func (s *Service) records() ([]renderer.Record, error) {
	subs, err := controller.List(s.db)
	if err != nil {
		return nil, err
	}

	records := make([]renderer.Record, 0, len(subs))
	for i := range subs {
		records = append(records, renderer.FromModel(&subs[i]))
	}

	return records, nil
}

// Excel handles GET /api/submissions/export.
func (s *Service) Excel(c *fiber.Ctx) error {
	records, err := s.records()
	if err != nil {
		log.Error().Err(err).Msg("failed to load submissions for export")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export to Excel",
		})
	}

	workbook, err := renderer.Excel(records)
	if err != nil {
		log.Error().Err(err).Msg("failed to render spreadsheet")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export to Excel",
		})
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		log.Error().Err(err).Msg("failed to write spreadsheet")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export to Excel",
		})
	}

	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="submissions.xlsx"`)

	return c.Send(buf.Bytes())
}

// PDF handles GET /api/submissions/export.pdf.
func (s *Service) PDF(c *fiber.Ctx) error {
	records, err := s.records()
	if err != nil {
		log.Error().Err(err).Msg("failed to load submissions for export")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export to PDF",
		})
	}

	doc, err := renderer.PDF(records, s.cfg.Webserver.URL)
	if err != nil {
		log.Error().Err(err).Msg("failed to render pdf")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export to PDF",
		})
	}

	c.Set(fiber.HeaderContentType, contentTypePDF)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="submissions.pdf"`)

	return c.Send(doc)
}
