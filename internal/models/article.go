package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Article is the central entity: a research compendium bundling a paper with
// its code and data archives
type Article struct {
	ID        int64         `json:"id" db:"id"`
	SiteOwner string        `json:"site_owner" db:"site_owner"` // opaque user id, identity lives elsewhere
	Status    ArticleStatus `json:"status" db:"status"`

	// Bibliographic
	Title       string          `json:"title" db:"title"`
	AuthorsText string          `json:"authors_text" db:"authors_text"`
	Authorship  json.RawMessage `json:"authorship,omitempty" db:"authorship"` // loosely structured, schema-on-read
	DOI         string          `json:"doi,omitempty" db:"doi"`
	Journal     string          `json:"journal,omitempty" db:"journal"`
	ArticleURL  string          `json:"article_url,omitempty" db:"article_url"`
	RelatedURLs json.RawMessage `json:"related_urls,omitempty" db:"related_urls"`
	Month       string          `json:"month,omitempty" db:"month"`
	Year        string          `json:"year,omitempty" db:"year"`
	Volume      string          `json:"volume,omitempty" db:"volume"`
	Number      string          `json:"number,omitempty" db:"number"`
	Pages       string          `json:"pages,omitempty" db:"pages"`
	BibJSON     json.RawMessage `json:"bibjson,omitempty" db:"bibjson"`

	// Descriptive, raw markdown; rendering is the web layer's concern
	PaperAbstract     string `json:"paper_abstract,omitempty" db:"paper_abstract"`
	DescriptionHeader string `json:"description_header" db:"description_header"`
	CodeDataAbstract  string `json:"code_data_abstract,omitempty" db:"code_data_abstract"`
	ManualCitation    string `json:"manual_citation,omitempty" db:"manual_citation"`
	NotesForStaff     string `json:"notes_for_staff,omitempty" db:"notes_for_staff"`
	AdminNotes        string `json:"admin_notes,omitempty" db:"admin_notes"`

	// Classification
	ContentLicense         string `json:"content_license,omitempty" db:"content_license"`
	CodeLicense            string `json:"code_license,omitempty" db:"code_license"`
	CompendiumType         string `json:"compendium_type,omitempty" db:"compendium_type"`
	PrimaryResearchField   string `json:"primary_research_field,omitempty" db:"primary_research_field"`
	SecondaryResearchField string `json:"secondary_research_field,omitempty" db:"secondary_research_field"`

	// File slots: storage keys for externally stored binary content
	ArticleFile             string `json:"article_file,omitempty" db:"article_file"`
	CodeArchiveFile         string `json:"code_archive_file,omitempty" db:"code_archive_file"`
	CodeDOI                 string `json:"code_doi,omitempty" db:"code_doi"`
	DataArchiveFile         string `json:"data_archive_file,omitempty" db:"data_archive_file"`
	DataDOI                 string `json:"data_doi,omitempty" db:"data_doi"`
	LectureNotesArchiveFile string `json:"lecture_notes_archive_file,omitempty" db:"lecture_notes_archive_file"`
	HomeworkArchiveFile     string `json:"homework_archive_file,omitempty" db:"homework_archive_file"`
	SolutionArchiveFile     string `json:"solution_archive_file,omitempty" db:"solution_archive_file"`
	BookFile                string `json:"book_file,omitempty" db:"book_file"`
	VerificationArchiveFile string `json:"verification_archive_file,omitempty" db:"verification_archive_file"`
	ImageArchiveFile        string `json:"image_archive_file,omitempty" db:"image_archive_file"`

	// Tags: the free-form set is deprecated, kept for rows that still carry it;
	// new associations go through ArticleTags with a tag type
	Tags        []string     `json:"tags,omitempty" db:"-"`
	ArticleTags []ArticleTag `json:"article_tags,omitempty" db:"-"`

	// LegacyID carries the identifier from the site we imported old pages from
	LegacyID *int64 `json:"legacy_id,omitempty" db:"legacy_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ArticleTag is a tag association carrying the origin of the tag
type ArticleTag struct {
	Name    string  `json:"name" db:"name"`
	TagType TagType `json:"tag_type" db:"tag_type"`
}

// String returns the article title
func (a *Article) String() string {
	return a.Title
}

// CanonicalPath returns the site path for the article detail page. It embeds
// the four-digit creation year and the numeric id; the year is cosmetic, the
// id is the routing key. The path is stable as long as created never changes.
func (a *Article) CanonicalPath() string {
	return fmt.Sprintf("/compendia/%04d/%d", a.CreatedAt.Year(), a.ID)
}

// FileSlot identifies one of the article's attachment columns
type FileSlot string

const (
	SlotArticle             FileSlot = "article_file"
	SlotCodeArchive         FileSlot = "code_archive_file"
	SlotDataArchive         FileSlot = "data_archive_file"
	SlotLectureNotesArchive FileSlot = "lecture_notes_archive_file"
	SlotHomeworkArchive     FileSlot = "homework_archive_file"
	SlotSolutionArchive     FileSlot = "solution_archive_file"
	SlotBook                FileSlot = "book_file"
	SlotVerificationArchive FileSlot = "verification_archive_file"
	SlotImageArchive        FileSlot = "image_archive_file"
)

// slotCategories maps each file slot to its storage namespace. The article
// itself lives under "articles", everything else is supporting material.
var slotCategories = map[FileSlot]string{
	SlotArticle:             "articles",
	SlotCodeArchive:         "materials",
	SlotDataArchive:         "materials",
	SlotLectureNotesArchive: "materials",
	SlotHomeworkArchive:     "materials",
	SlotSolutionArchive:     "materials",
	SlotBook:                "materials",
	SlotVerificationArchive: "materials",
	SlotImageArchive:        "materials",
}

// UploadCategory returns the storage namespace for a file slot, or "" if the
// slot is unknown
func UploadCategory(slot FileSlot) string {
	return slotCategories[slot]
}

// SetFile stores a storage key into the named slot. Returns false for an
// unknown slot.
func (a *Article) SetFile(slot FileSlot, key string) bool {
	switch slot {
	case SlotArticle:
		a.ArticleFile = key
	case SlotCodeArchive:
		a.CodeArchiveFile = key
	case SlotDataArchive:
		a.DataArchiveFile = key
	case SlotLectureNotesArchive:
		a.LectureNotesArchiveFile = key
	case SlotHomeworkArchive:
		a.HomeworkArchiveFile = key
	case SlotSolutionArchive:
		a.SolutionArchiveFile = key
	case SlotBook:
		a.BookFile = key
	case SlotVerificationArchive:
		a.VerificationArchiveFile = key
	case SlotImageArchive:
		a.ImageArchiveFile = key
	default:
		return false
	}
	return true
}
