package models

import (
	"encoding/json"
	"fmt"
	"path"
	"time"
)

// Verification records the result of a reproducibility check run against an
// article's code and data
type Verification struct {
	ID          int64              `json:"id" db:"id"`
	ArticleID   int64              `json:"article_id" db:"article_id"`
	Status      VerificationStatus `json:"status" db:"status"`
	Stdout      string             `json:"stdout,omitempty" db:"stdout"`
	Stderr      string             `json:"stderr,omitempty" db:"stderr"`
	RequestID   string             `json:"requestid,omitempty" db:"requestid"` // correlates to the external verification job
	Parameters  json.RawMessage    `json:"parameters,omitempty" db:"parameters"`
	ArchiveInfo json.RawMessage    `json:"archive_info,omitempty" db:"archive_info"`
	ArchiveFile string             `json:"archive_file,omitempty" db:"archive_file"`

	// Slug is assigned exactly once at creation and never changes. Unique
	// within the owning article.
	Slug string `json:"slug" db:"slug"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// String returns the display form of the verification
func (v *Verification) String() string {
	return fmt.Sprintf("verification %d for article %d", v.ID, v.ArticleID)
}

// PopulateSlug derives the slug from the creation instant and the row id,
// formatted YYYY.MM.<id>. Requires ID and CreatedAt to be set.
func (v *Verification) PopulateSlug() string {
	return fmt.Sprintf("%04d.%02d.%d", v.CreatedAt.Year(), int(v.CreatedAt.Month()), v.ID)
}

// ArchiveBaseName returns the filename component of the stored archive key,
// or "" when no archive is attached
func (v *Verification) ArchiveBaseName() string {
	if v.ArchiveFile == "" {
		return ""
	}
	return path.Base(v.ArchiveFile)
}
