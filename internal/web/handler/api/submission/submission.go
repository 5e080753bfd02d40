// Package submission provides the JSON API handlers for creating,
// listing, editing and deleting form submissions.
package submission

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pension-board/retiree-intake/internal/config"
	controller "github.com/pension-board/retiree-intake/internal/db/controller/submission"
	"github.com/pension-board/retiree-intake/internal/filecodec"
	"github.com/pension-board/retiree-intake/internal/form"
	"github.com/pension-board/retiree-intake/internal/web/handler"
	"github.com/pension-board/retiree-intake/internal/web/handler/api"
)

const (
	// Path is the base path of the submissions API.
	Path = handler.APIPath + "/submissions"
)

// Service is the submissions API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the submissions API handler.
var Handler = Service{}

// Init initializes the submissions handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Post(handler.RouterRootPath, s.Create)
		router.Delete(handler.RouterRootPath, s.Clear)
		router.Put("/:id<int>", s.Update)
		router.Delete("/:id<int>", s.Delete)
	})

	return nil
}

// List handles GET /api/submissions.
func (s *Service) List(c *fiber.Ctx) error {
	subs, err := controller.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list submissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load submissions",
		})
	}

	return c.JSON(api.NewSubmissionViews(subs))
}

// Create handles POST /api/submissions (multipart/form-data).
func (s *Service) Create(c *fiber.Ctx) error {
	mf, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected multipart form data",
		})
	}

	data := make(map[string]string, len(mf.Value))
	for name, values := range mf.Value {
		if len(values) > 0 {
			data[name] = values[0]
		}
	}

	uploads, err := collectUploads(mf)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sub, err := controller.Create(s.db, data, uploads)
	if err != nil {
		log.Error().Err(err).Msg("failed to save submission")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save submission",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": sub.ID})
}

// collectUploads walks the enumerated file slots, enforces slot cardinality
// and the per-file size cap and encodes every payload for storage.
func collectUploads(mf *multipart.Form) ([]controller.Upload, error) {
	var uploads []controller.Upload

	for field, headers := range mf.File {
		slot, ok := form.Slot(field)
		if !ok {
			return nil, fmt.Errorf("unknown file field %q", field)
		}

		if len(headers) > slot.MaxCount {
			return nil, fmt.Errorf("too many files for %q (max %d)", field, slot.MaxCount)
		}

		for _, fh := range headers {
			if fh.Size > form.MaxFileSize {
				return nil, fmt.Errorf("file %q exceeds the 10 MB limit", fh.Filename)
			}

			content, err := readAndEncode(fh)
			if err != nil {
				return nil, err
			}

			uploads = append(uploads, controller.Upload{
				Field:   field,
				Name:    fh.Filename,
				Content: content,
			})
		}
	}

	return uploads, nil
}

func readAndEncode(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("could not read file %q", fh.Filename)
	}
	defer f.Close() //nolint:errcheck

	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("could not read file %q", fh.Filename)
	}

	content, err := filecodec.Encode(b)
	if err != nil {
		return "", fmt.Errorf("file %q is empty", fh.Filename)
	}

	return content, nil
}

// Update handles PUT /api/submissions/:id, rewriting the scalar fields.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	var body struct {
		Data map[string]string `json:"data"`
	}

	if err = c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err = controller.Update(s.db, id, body.Data); err != nil {
		if errors.Is(err, controller.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to update submission")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update submission",
		})
	}

	return c.JSON(fiber.Map{"success": true, "id": id})
}

// Delete handles DELETE /api/submissions/:id.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	if err = controller.Delete(s.db, id); err != nil {
		if errors.Is(err, controller.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to delete submission")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete submission",
		})
	}

	return c.JSON(fiber.Map{"success": true, "deletedId": id})
}

// Clear handles DELETE /api/submissions, removing every submission and file.
func (s *Service) Clear(c *fiber.Ctx) error {
	if err := controller.ClearAll(s.db); err != nil {
		log.Error().Err(err).Msg("failed to clear submissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear submissions",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "All submissions cleared"})
}
