package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

const (
	MimePlain = "text/plain"
	MimePDF   = "application/pdf"
	MimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Format resolves the document type from the file extension, falling back to
// the declared mime type. It returns "" when neither is recognised.
func Format(filename, mime string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDocx
	case ".txt", ".md":
		return MimePlain
	}

	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case MimePDF, MimeDocx, MimePlain:
		return mime
	}
	return ""
}

// Text extracts the plain text of a pdf, docx or txt document.
func Text(filename, mime string, data []byte) (string, error) {
	switch Format(filename, mime) {
	case MimePlain:
		return string(data), nil
	case MimePDF:
		return pdfText(data)
	case MimeDocx:
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, describe(filename, mime))
	}
}

// TextOrPlain is Text, except that a document of unknown format is read as
// plain text when it is valid UTF-8.
func TextOrPlain(filename, mime string, data []byte) (string, error) {
	text, err := Text(filename, mime, data)
	if errors.Is(err, ErrUnsupportedFormat) && utf8.Valid(data) {
		return string(data), nil
	}
	return text, err
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// pages whose text layer cannot be decoded are skipped
		text, _ := page.GetPlainText(nil)
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

func describe(filename, mime string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	if mime != "" {
		return mime
	}
	return "unknown"
}
