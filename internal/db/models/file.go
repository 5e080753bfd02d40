package models

// File represents one uploaded document attached to a submission.
// The binary payload is stored base64 encoded in Content so the row stays
// portable across storage engines. Files are written once together with
// their owning submission and are read-only afterwards.
type File struct {
	ID           uint64 `gorm:"primaryKey"`
	SubmissionID uint64 `gorm:"index;not null"`
	// FieldName is the upload slot the file was attached to, for example
	// "retirementLetter". Multi valued slots produce several rows sharing
	// the same FieldName.
	FieldName    string `gorm:"size:255;not null"`
	OriginalName string `gorm:"size:255;not null"`
	Content      string `gorm:"type:text"`
}
