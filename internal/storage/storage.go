// Package storage owns the layout and collision avoidance of uploaded file
// keys. Callers supply only a category namespace and a candidate filename.
package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Upload categories. The data layer namespaces every stored file under one
// of these.
const (
	CategoryArticles  = "articles"
	CategoryMaterials = "materials"
	CategoryResults   = "results"
)

// Storage persists uploaded file content under a key produced by UploadPath
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64) error
	Remove(ctx context.Context, key string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename strips path components and reduces the name to a safe
// character set
func SanitizeFilename(filename string) string {
	// Drop any directory part, whichever separator the client used
	if idx := strings.LastIndexAny(filename, `/\`); idx >= 0 {
		filename = filename[idx+1:]
	}
	filename = unsafeChars.ReplaceAllString(filename, "_")
	filename = strings.Trim(filename, "._")
	if filename == "" {
		filename = "upload"
	}
	return filename
}

// UploadPath returns a namespaced storage key for a candidate filename. A
// short random prefix keeps repeated uploads of the same name from
// colliding.
func UploadPath(category, filename string) string {
	return fmt.Sprintf("%s/%s_%s", category, uuid.New().String()[:8], SanitizeFilename(filename))
}
