// Package submission provides CRUD operations for form submissions and
// their uploaded files.
package submission

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pension-board/retiree-intake/internal/db/models"
)

var (
	// ErrSubmissionNotFound is returned when a submission id does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrFileNotFound is returned when a file id does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Upload carries one uploaded file on its way into the database.
// Content is the already base64 encoded payload.
type Upload struct {
	Field   string
	Name    string
	Content string
}

// Create inserts one submission row together with all its file rows in a
// single transaction. A failing file insert rolls the submission back, so
// no half written submission can survive a crash between the two inserts.
func Create(db *gorm.DB, data map[string]string, files []Upload) (*models.Submission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if data == nil {
		data = make(map[string]string)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	sub := &models.Submission{
		CreatedAt: time.Now().UTC(),
		DataJSON:  string(raw),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(sub); result.Error != nil {
			return result.Error
		}

		for _, f := range files {
			row := models.File{
				SubmissionID: sub.ID,
				FieldName:    f.Field,
				OriginalName: f.Name,
				Content:      f.Content,
			}

			if result := tx.Create(&row); result.Error != nil {
				return result.Error
			}

			sub.Files = append(sub.Files, row)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// List returns all submissions newest first, each with its files preloaded.
func List(db *gorm.DB) ([]models.Submission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var subs []models.Submission

	result := db.Preload("Files").Order("id DESC").Find(&subs)
	if result.Error != nil {
		return nil, result.Error
	}

	return subs, nil
}

// Get retrieves a single submission by its id with files preloaded.
func Get(db *gorm.DB, id uint64) (*models.Submission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sub models.Submission

	result := db.Preload("Files").First(&sub, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}

		return nil, result.Error
	}

	return &sub, nil
}

// Update rewrites the scalar field mapping of an existing submission.
// The file set is fixed at creation time and is never touched here.
func Update(db *gorm.DB, id uint64, data map[string]string) error {
	if db == nil {
		return ErrDBNil
	}

	if data == nil {
		data = make(map[string]string)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	result := db.Model(&models.Submission{}).Where("id = ?", id).Update("data_json", string(raw))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

// Delete removes one submission. Its file rows are removed by the cascade
// constraint; on engines that skipped the constraint DDL the files are
// removed explicitly first.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("submission_id = ?", id).Delete(&models.File{}); result.Error != nil {
			return result.Error
		}

		result := tx.Delete(&models.Submission{}, id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrSubmissionNotFound
		}

		return nil
	})
}

// ClearAll deletes every file and every submission and restarts the id
// sequence where the engine supports it, so the next submission receives
// a fresh id starting from 1. A failing sequence reset is logged only.
func ClearAll(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.File{}); result.Error != nil {
			return result.Error
		}

		if result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Submission{}); result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err != nil {
		return err
	}

	resetSequences(db)

	return nil
}

// resetSequences restarts id numbering per engine, best effort.
func resetSequences(db *gorm.DB) {
	var stmts []string

	switch db.Dialector.Name() {
	case "postgres":
		stmts = []string{
			"ALTER SEQUENCE submissions_id_seq RESTART WITH 1",
			"ALTER SEQUENCE files_id_seq RESTART WITH 1",
		}
	case "sqlite":
		stmts = []string{
			"DELETE FROM sqlite_sequence WHERE name IN ('submissions', 'files')",
		}
	case "mysql":
		stmts = []string{
			"ALTER TABLE submissions AUTO_INCREMENT = 1",
			"ALTER TABLE files AUTO_INCREMENT = 1",
		}
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			log.Warn().Err(err).Str("stmt", stmt).Msg("could not reset id sequence")
		}
	}
}

// GetFile retrieves one uploaded file by its id.
func GetFile(db *gorm.DB, id uint64) (*models.File, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var file models.File

	result := db.First(&file, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}

		return nil, result.Error
	}

	return &file, nil
}

// Count returns the number of stored submissions.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64

	result := db.Model(&models.Submission{}).Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}
