package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime"
	"net/http"
	"strings"

	"github.com/muhammadolammi/hrassist/internal/extract"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	errNoJSON        = errors.New("no valid JSON object found in the model response")
	errMissingUpload = errors.New("missing upload")
	errMissingField  = errors.New("missing form field")
)

func CleanJson(input string) string {
	clean := strings.TrimSpace(input)

	// Remove opening ```json or ``` with optional newline
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// ExtractJSONObject returns the span from the first '{' to the last '}' of a
// model reply, after stripping code fences.
func ExtractJSONObject(reply string) (string, error) {
	clean := CleanJson(reply)
	start := strings.IndexByte(clean, '{')
	end := strings.LastIndexByte(clean, '}')
	if start < 0 || end < start {
		return "", errNoJSON
	}
	return clean[start : end+1], nil
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("error marshalling response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

func respondWithError(w http.ResponseWriter, code int, msg string) {
	respondWithJSON(w, code, map[string]string{"error": msg})
}

type textResult struct {
	Result string `json:"result"`
}

type upload struct {
	Filename string
	Mime     string
	Data     []byte
}

// parseForm reads either a multipart or a urlencoded body, capped at the
// configured upload size.
func (cfg *apiConfig) parseForm(w http.ResponseWriter, r *http.Request) error {
	if r.ContentLength > cfg.MaxUploadBytes {
		return &http.MaxBytesError{Limit: cfg.MaxUploadBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(32 << 20)
	}
	return r.ParseForm()
}

// formValues returns the trimmed values of the named fields, failing on the
// first one that is empty.
func formValues(r *http.Request, names ...string) (map[string]string, error) {
	values := make(map[string]string, len(names))
	for _, name := range names {
		v := strings.TrimSpace(r.FormValue(name))
		if v == "" {
			return nil, fmt.Errorf("%w: %s", errMissingField, name)
		}
		values[name] = v
	}
	return values, nil
}

func readUpload(r *http.Request, field string) (upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return upload{}, fmt.Errorf("%w: %s", errMissingUpload, field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return upload{}, fmt.Errorf("read %s: %w", field, err)
	}
	return upload{
		Filename: header.Filename,
		Mime:     header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// documentText archives the upload and extracts its text. Archive failures
// are logged and do not fail the request; the returned key is then empty.
func (cfg *apiConfig) documentText(ctx context.Context, up upload, lenient bool) (text, key string, err error) {
	if cfg.Archiver != nil {
		key, err = cfg.Archiver.Archive(ctx, up.Filename, up.Mime, up.Data)
		if err != nil {
			cfg.Logger.WarnContext(ctx, "failed to archive upload",
				"filename", up.Filename,
				"error", err,
			)
			key = ""
		}
	}

	if lenient {
		text, err = extract.TextOrPlain(up.Filename, up.Mime, up.Data)
	} else {
		text, err = extract.Text(up.Filename, up.Mime, up.Data)
	}
	if err != nil {
		return "", key, fmt.Errorf("%s: %w", up.Filename, err)
	}
	return text, key, nil
}

// respondWithRequestError maps form, upload and extraction failures to a
// client error.
func respondWithRequestError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respondWithError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, errMissingUpload), errors.Is(err, errMissingField):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("could not read request: %v", err))
	}
}

var salaryPrinter = message.NewPrinter(language.English)

// formatSalary groups thousands, e.g. 85000 -> "85,000".
func formatSalary(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return salaryPrinter.Sprintf("%d", int64(v))
	}
	return salaryPrinter.Sprintf("%.2f", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
