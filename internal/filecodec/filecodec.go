// Package filecodec converts uploaded binary content to and from the
// text representation stored in the files table.
package filecodec

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrNoData is returned when there is no content to encode.
	ErrNoData = errors.New("no file data to encode")
	// ErrCorruptData is returned when stored content is not valid base64
	// or decodes to zero bytes.
	ErrCorruptData = errors.New("stored file content is corrupt")
)

// Encode produces the storable base64 text for a file payload.
// Empty input is an explicit error, not a zero-length encode.
func Encode(b []byte) (string, error) {
	if len(b) == 0 {
		return "", ErrNoData
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode is the inverse of Encode. Text that does not decode, or decodes
// to zero bytes, is treated as corrupt data rather than an empty file.
func Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrCorruptData
	}

	if len(b) == 0 {
		return nil, ErrCorruptData
	}

	return b, nil
}

// mimeTypes is a closed lookup table keyed by lower case file extension.
// Content types are never inferred from the payload itself.
var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// MimeType maps a filename to a content type for download responses,
// defaulting to a generic binary type for unrecognized extensions.
func MimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}

	return "application/octet-stream"
}
