package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mime     string
		want     string
	}{
		{"pdf by extension", "resume.PDF", "", MimePDF},
		{"docx by extension", "policy.docx", "application/octet-stream", MimeDocx},
		{"txt by extension", "notes.txt", "", MimePlain},
		{"mime fallback", "upload", "application/pdf", MimePDF},
		{"mime with params", "upload", "text/plain; charset=utf-8", MimePlain},
		{"extension wins over mime", "jd.txt", "application/pdf", MimePlain},
		{"unknown", "photo.png", "image/png", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.filename, tt.mime))
		})
	}
}

func TestText(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		got, err := Text("jd.txt", "", []byte("Senior Go Engineer"))
		require.NoError(t, err)
		assert.Equal(t, "Senior Go Engineer", got)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := Text("photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
		require.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), ".png")
	})

	t.Run("broken pdf", func(t *testing.T) {
		_, err := Text("resume.pdf", "", []byte("definitely not a pdf"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("broken docx", func(t *testing.T) {
		_, err := Text("policy.docx", "", []byte("not a zip archive"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestTextOrPlain(t *testing.T) {
	t.Run("unknown utf-8 document is read as text", func(t *testing.T) {
		got, err := TextOrPlain("handbook.rst", "", []byte("Leave policy: 25 days"))
		require.NoError(t, err)
		assert.Equal(t, "Leave policy: 25 days", got)
	})

	t.Run("unknown binary document is rejected", func(t *testing.T) {
		_, err := TextOrPlain("handbook.bin", "", []byte{0xff, 0xfe, 0x00, 0xd8})
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
