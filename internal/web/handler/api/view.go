// Package api holds the JSON view shapes shared by the API handlers and
// the dashboard.
package api

import (
	"time"

	"github.com/pension-board/retiree-intake/internal/db/models"
)

// FileView is the file descriptor exposed on the list surface. It never
// inlines binary content; downloads go through the files endpoint.
type FileView struct {
	ID       uint64 `json:"id"`
	Field    string `json:"field"`
	Original string `json:"original"`
}

// SubmissionView is one submission as returned by GET /api/submissions.
type SubmissionView struct {
	ID        uint64            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Data      map[string]string `json:"data"`
	Files     []FileView        `json:"files"`
}

// NewSubmissionView converts a stored submission into its list view.
func NewSubmissionView(sub *models.Submission) SubmissionView {
	view := SubmissionView{
		ID:        sub.ID,
		CreatedAt: sub.CreatedAt,
		Data:      sub.Data(),
		Files:     make([]FileView, 0, len(sub.Files)),
	}

	for _, f := range sub.Files {
		view.Files = append(view.Files, FileView{
			ID:       f.ID,
			Field:    f.FieldName,
			Original: f.OriginalName,
		})
	}

	return view
}

// NewSubmissionViews converts a list of stored submissions.
func NewSubmissionViews(subs []models.Submission) []SubmissionView {
	views := make([]SubmissionView, 0, len(subs))

	for i := range subs {
		views = append(views, NewSubmissionView(&subs[i]))
	}

	return views
}
