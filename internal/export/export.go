// Package export renders the stored submissions into offline review
// formats: a spreadsheet (one row per submission) and a sectioned PDF
// document (one page per submission). Both renderers consume the same
// Record view and the field schema from the form package.
package export

import (
	"strings"
	"time"

	"github.com/pension-board/retiree-intake/internal/db/models"
)

// notProvided substitutes missing optional values in the document export.
const notProvided = "Not provided"

// FileRef describes one uploaded file inside a Record. Content carries the
// stored base64 payload so the PDF renderer can embed images inline.
type FileRef struct {
	ID       uint64
	Field    string
	Original string
	Content  string
}

// Record is the flattened view of one submission both renderers work on.
type Record struct {
	ID        uint64
	CreatedAt time.Time
	Data      map[string]string
	Files     []FileRef
}

// FromModel converts a stored submission into the export view.
func FromModel(sub *models.Submission) Record {
	rec := Record{
		ID:        sub.ID,
		CreatedAt: sub.CreatedAt,
		Data:      sub.Data(),
	}

	for _, f := range sub.Files {
		rec.Files = append(rec.Files, FileRef{
			ID:       f.ID,
			Field:    f.FieldName,
			Original: f.OriginalName,
			Content:  f.Content,
		})
	}

	return rec
}

// FilesByField groups a record's files by their upload slot.
func (r Record) FilesByField() map[string][]FileRef {
	out := make(map[string][]FileRef)

	for _, f := range r.Files {
		out[f.Field] = append(out[f.Field], f)
	}

	return out
}

// dateLayouts are the client formats seen in stored submissions.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// formatValue renders a field value for the document export. Blank values
// become the not provided marker and date-typed values are reformatted in
// long form when they parse.
func formatValue(fieldName, value string) string {
	if value == "" {
		return notProvided
	}

	if strings.Contains(strings.ToLower(fieldName), "date") {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t.Format("January 2, 2006")
			}
		}
	}

	return value
}
