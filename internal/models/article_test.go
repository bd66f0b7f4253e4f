package models

import (
	"strings"
	"testing"
	"time"
)

func TestArticleCanonicalPath(t *testing.T) {
	created := time.Date(2023, time.June, 1, 12, 0, 0, 0, time.UTC)
	article := &Article{ID: 42, Title: "Reproducible Fluid Dynamics", CreatedAt: created}

	path := article.CanonicalPath()
	if path != "/compendia/2023/42" {
		t.Errorf("CanonicalPath() = %q, want /compendia/2023/42", path)
	}
	if !strings.Contains(path, "2023") || !strings.Contains(path, "42") {
		t.Errorf("CanonicalPath() = %q, must embed the creation year and the id", path)
	}

	// Stable for a fixed (created, id) pair
	if again := article.CanonicalPath(); again != path {
		t.Errorf("CanonicalPath() not stable: %q then %q", path, again)
	}
}

func TestArticleCanonicalPathPadsYear(t *testing.T) {
	article := &Article{ID: 7, CreatedAt: time.Date(987, time.January, 1, 0, 0, 0, 0, time.UTC)}
	if got := article.CanonicalPath(); got != "/compendia/0987/7" {
		t.Errorf("CanonicalPath() = %q, want four-digit year 0987", got)
	}
}

func TestArticleString(t *testing.T) {
	article := &Article{Title: "A Compendium"}
	if article.String() != "A Compendium" {
		t.Errorf("String() = %q, want the title", article.String())
	}
}

func TestUploadCategory(t *testing.T) {
	tests := []struct {
		slot FileSlot
		want string
	}{
		{SlotArticle, "articles"},
		{SlotCodeArchive, "materials"},
		{SlotDataArchive, "materials"},
		{SlotLectureNotesArchive, "materials"},
		{SlotHomeworkArchive, "materials"},
		{SlotSolutionArchive, "materials"},
		{SlotBook, "materials"},
		{SlotVerificationArchive, "materials"},
		{SlotImageArchive, "materials"},
		{FileSlot("bogus"), ""},
	}

	for _, tt := range tests {
		if got := UploadCategory(tt.slot); got != tt.want {
			t.Errorf("UploadCategory(%s) = %q, want %q", tt.slot, got, tt.want)
		}
	}
}

func TestArticleSetFile(t *testing.T) {
	article := &Article{}

	if !article.SetFile(SlotCodeArchive, "materials/abc_code.zip") {
		t.Fatal("SetFile should accept a known slot")
	}
	if article.CodeArchiveFile != "materials/abc_code.zip" {
		t.Errorf("CodeArchiveFile = %q, want the stored key", article.CodeArchiveFile)
	}

	if article.SetFile(FileSlot("bogus"), "x") {
		t.Error("SetFile should reject an unknown slot")
	}
}
