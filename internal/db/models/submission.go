// Package models contains database model definitions.
package models

import (
	"encoding/json"
	"time"
)

// Submission represents one complete form entry. All scalar form answers
// are kept as a serialized JSON object in DataJSON; no schema is enforced
// on the field set beyond being valid JSON text.
type Submission struct {
	ID        uint64    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	DataJSON  string    `gorm:"type:text;not null"`
	// Files uploaded with this submission. Deleting the submission
	// removes them (cascade).
	Files []File `gorm:"foreignKey:SubmissionID;references:ID;constraint:OnDelete:CASCADE"`
}

// Data parses DataJSON back into the field mapping. A submission stored
// with empty or unparsable data yields an empty map, never an error; the
// row itself is still a valid submission.
func (s *Submission) Data() map[string]string {
	data := make(map[string]string)

	if s.DataJSON == "" {
		return data
	}

	if err := json.Unmarshal([]byte(s.DataJSON), &data); err != nil {
		return make(map[string]string)
	}

	return data
}
