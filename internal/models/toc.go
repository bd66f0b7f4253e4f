package models

import (
	"regexp"
	"strings"
)

// TableOfContentsEntry is a taxonomy node grouping compendium types for site
// navigation. Both entry_order and slug are unique across all entries.
type TableOfContentsEntry struct {
	ID          int64  `json:"id" db:"id"`
	EntryText   string `json:"entry_text" db:"entry_text"`
	EntryOrder  int    `json:"entry_order" db:"entry_order"`
	Description string `json:"description,omitempty" db:"description"`

	// Slug is derived from EntryText at creation but remains editable
	Slug string `json:"slug" db:"slug"`
}

// String returns the entry text
func (e *TableOfContentsEntry) String() string {
	return e.EntryText
}

// EntryType maps a compendium type to the table of contents entry it is
// listed under. compendium_type is unique across rows, so the grouping of
// articles into sections is deterministic.
type EntryType struct {
	ID                     int64  `json:"id" db:"id"`
	CompendiumType         string `json:"compendium_type" db:"compendium_type"`
	TableOfContentsEntryID int64  `json:"table_of_contents_entry_id" db:"table_of_contents_entry_id"`
}

// String returns the compendium type
func (t *EntryType) String() string {
	return t.CompendiumType
}

// TableOfContentsOption is a deprecated experimental mapping from a
// compendium type to a markdown description. Kept only so rows already stored
// remain readable.
type TableOfContentsOption struct {
	ID             int64  `json:"id" db:"id"`
	CompendiumType string `json:"compendium_type" db:"compendium_type"`
	Description    string `json:"description,omitempty" db:"description"`
}

// String returns the compendium type
func (o *TableOfContentsOption) String() string {
	return o.CompendiumType
}

// Section is one rendered table-of-contents group: an entry together with the
// articles whose compendium type maps to it
type Section struct {
	Entry           TableOfContentsEntry `json:"entry"`
	CompendiumTypes []string             `json:"compendium_types"`
	Articles        []*Article           `json:"articles"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and reduces it to kebab-case: lowercase letters,
// digits and single hyphens, no leading or trailing hyphen
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
