package dashboard_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pension-board/retiree-intake/internal/config"
	controller "github.com/pension-board/retiree-intake/internal/db/controller/submission"
	"github.com/pension-board/retiree-intake/internal/db/models"
	"github.com/pension-board/retiree-intake/internal/web/handler/dashboard"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the template name so tests can assert the rendered template.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)
	return nil
}

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

func TestDashboardRenders(t *testing.T) {
	db := newTestDB(t)

	_, err := controller.Create(db, map[string]string{"fullName": "Jane Doe"}, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var h dashboard.Service
	cfg := &config.Config{
		Title:     "Retiree Verification Intake",
		Webserver: config.Webserver{URL: "http://localhost:8080", Port: 8080},
	}
	require.NoError(t, h.Init(app, cfg, db))

	req := httptest.NewRequest(fiber.MethodGet, dashboard.Path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, dashboard.TemplateName, string(body))
}
