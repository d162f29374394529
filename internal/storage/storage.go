// Package storage archives uploaded documents, either in a Cloudflare R2
// bucket or in a local directory.
package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Archiver keeps a copy of an uploaded document and returns the key it was
// stored under; Download reads it back by that key.
type Archiver interface {
	Archive(ctx context.Context, filename, mime string, data []byte) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
}

// objectName builds a collision-free name from the client supplied filename,
// dropping any directory components it carries.
func objectName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return uuid.NewString() + "-" + base
}
