// Package dashboard provides the administrative dashboard page listing
// all submissions with download, export and delete actions.
package dashboard

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pension-board/retiree-intake/internal/config"
	controller "github.com/pension-board/retiree-intake/internal/db/controller/submission"
	"github.com/pension-board/retiree-intake/internal/form"
	"github.com/pension-board/retiree-intake/internal/web/handler"
	"github.com/pension-board/retiree-intake/internal/web/handler/api"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"
)

// Row is one submission prepared for the dashboard table.
type Row struct {
	ID           uint64
	Submitted    string
	FullName     string
	Organization string
	PensionNo    string
	Files        []api.FileView
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	subs, err := controller.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load submissions for dashboard")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Title": s.cfg.Title,
			"Error": "Failed to load submissions",
		}, handler.BaseLayout)
	}

	rows := make([]Row, 0, len(subs))

	for i := range subs {
		view := api.NewSubmissionView(&subs[i])
		rows = append(rows, Row{
			ID:           view.ID,
			Submitted:    view.CreatedAt.Format(time.RFC822),
			FullName:     orDash(view.Data["fullName"]),
			Organization: orDash(view.Data["organization"]),
			PensionNo:    orDash(view.Data["pensionNumber"]),
			Files:        view.Files,
		})
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Rows":       rows,
		"Count":      len(rows),
		"FileLabels": fileLabels(),
	}, handler.BaseLayout)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}

	return v
}

func fileLabels() map[string]string {
	out := make(map[string]string, len(form.FileSlots))

	for _, slot := range form.FileSlots {
		out[slot.Name] = slot.Label
	}

	return out
}
