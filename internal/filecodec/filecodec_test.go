package filecodec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pension-board/retiree-intake/internal/filecodec"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "plain text", data: []byte("hello retiree intake")},
		{name: "single byte", data: []byte{0x00}},
		{name: "png magic", data: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := filecodec.Encode(tc.data)
			require.NoError(t, err)
			require.NotEmpty(t, encoded)

			decoded, err := filecodec.Decode(encoded)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tc.data, decoded))
		})
	}
}

func TestEncodeDecodeAllByteValues(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	encoded, err := filecodec.Encode(data)
	require.NoError(t, err)

	decoded, err := filecodec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestEncodeEmptyInput(t *testing.T) {
	_, err := filecodec.Encode(nil)
	assert.ErrorIs(t, err, filecodec.ErrNoData)

	_, err = filecodec.Encode([]byte{})
	assert.ErrorIs(t, err, filecodec.ErrNoData)
}

func TestDecodeCorruptData(t *testing.T) {
	// not base64 at all
	_, err := filecodec.Decode("!!! not base64 !!!")
	assert.ErrorIs(t, err, filecodec.ErrCorruptData)

	// valid base64 but decodes to zero bytes: corrupt, not an empty file
	_, err = filecodec.Decode("")
	assert.ErrorIs(t, err, filecodec.ErrCorruptData)
}

func TestMimeType(t *testing.T) {
	testCases := []struct {
		filename string
		want     string
	}{
		{"photo.png", "image/png"},
		{"photo.PNG", "image/png"},
		{"scan.jpg", "image/jpeg"},
		{"scan.jpeg", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"pic.webp", "image/webp"},
		{"letter.pdf", "application/pdf"},
		{"cv.doc", "application/msword"},
		{"cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"archive.zip", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.want, filecodec.MimeType(tc.filename))
		})
	}
}
