package export_test

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/pension-board/retiree-intake/internal/config"
	controller "github.com/pension-board/retiree-intake/internal/db/controller/submission"
	"github.com/pension-board/retiree-intake/internal/db/models"
	"github.com/pension-board/retiree-intake/internal/filecodec"
	exporthandler "github.com/pension-board/retiree-intake/internal/web/handler/api/export"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Submission{}, &models.File{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return db
}

func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{Immutable: true})

	var h exporthandler.Service
	cfg := &config.Config{Webserver: config.Webserver{URL: "http://localhost:8080", Port: 8080}}
	require.NoError(t, h.Init(app, cfg, db))

	return app
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	content, err := filecodec.Encode([]byte("letter-bytes"))
	require.NoError(t, err)

	_, err = controller.Create(db,
		map[string]string{"fullName": "Jane Doe", "organization": "Ministry of Works"},
		[]controller.Upload{
			{Field: "retirementLetter", Name: "letter.pdf", Content: content},
		})
	require.NoError(t, err)
}

func TestExcelExport(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	seed(t, db)

	req := httptest.NewRequest(fiber.MethodGet, exporthandler.PathExcel, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)

	rows, err := workbook.GetRows("Submissions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestExcelExportEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	req := httptest.NewRequest(fiber.MethodGet, exporthandler.PathExcel, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	// a validly structured header-only document, not an error
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)

	rows, err := workbook.GetRows("Submissions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestPDFExport(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	seed(t, db)

	req := httptest.NewRequest(fiber.MethodGet, exporthandler.PathPDF, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestPDFExportEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	req := httptest.NewRequest(fiber.MethodGet, exporthandler.PathPDF, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
