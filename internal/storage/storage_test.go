package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain filename", "paper.pdf", "paper.pdf"},
		{"spaces replaced", "my results file.tar.gz", "my_results_file.tar.gz"},
		{"unix path stripped", "/etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\me\thesis.pdf`, "thesis.pdf"},
		{"parent traversal stripped", "../../secret.txt", "secret.txt"},
		{"unsafe characters replaced", "data(final)!.csv", "data_final_.csv"},
		{"leading dots trimmed", ".hidden", "hidden"},
		{"empty becomes placeholder", "", "upload"},
		{"only unsafe becomes placeholder", "???", "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUploadPath(t *testing.T) {
	key := UploadPath(CategoryArticles, "paper.pdf")

	if !strings.HasPrefix(key, "articles/") {
		t.Errorf("UploadPath() = %q, want articles/ prefix", key)
	}
	if !strings.HasSuffix(key, "_paper.pdf") {
		t.Errorf("UploadPath() = %q, want _paper.pdf suffix", key)
	}

	// the random prefix keeps repeated uploads of the same name apart
	other := UploadPath(CategoryArticles, "paper.pdf")
	if key == other {
		t.Errorf("UploadPath() returned the same key twice: %q", key)
	}
}

func TestLocalSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	ctx := context.Background()
	content := "archive bytes"
	key := "materials/abc123_code.tar.gz"

	if err := store.Save(ctx, key, strings.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "materials", "abc123_code.tar.gz"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != content {
		t.Errorf("stored content = %q, want %q", data, content)
	}

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Join(dir, "materials"))
	if err != nil {
		t.Fatalf("reading category directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("category directory has %d entries, want 1", len(entries))
	}

	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "materials", "abc123_code.tar.gz")); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove()")
	}
}

func TestLocalRemoveMissingKey(t *testing.T) {
	store, err := NewLocal(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	if err := store.Remove(context.Background(), "articles/never_uploaded.pdf"); err != nil {
		t.Errorf("Remove() on missing key = %v, want nil", err)
	}
}
