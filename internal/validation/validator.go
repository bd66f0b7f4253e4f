package validation

import (
	"fmt"
	"regexp"

	"github.com/codersquid/researchcompendia/internal/models"
)

// Max lengths carried over from the legacy schema
const (
	MaxTitleLen             = 500
	MaxAuthorsTextLen       = 500
	MaxDOILen               = 2000
	MaxJournalLen           = 500
	MaxURLLen               = 2000
	MaxAbstractLen          = 5000
	MaxDescriptionHeaderLen = 100
	MaxNotesLen             = 5000
	MaxManualCitationLen    = 500
	MaxBibtexFieldLen       = 500
	MaxRequestIDLen         = 50
	MaxEntryTextLen         = 100
	MaxEntryDescriptionLen  = 500
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:[.-][a-z0-9]+)*$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator provides validation methods for every record type in the data
// layer. All checks run before persistence; an invalid record is never
// partially written.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

func required(errors []ValidationError, field, value string) []ValidationError {
	if value == "" {
		errors = append(errors, ValidationError{Field: field, Message: field + " is required"})
	}
	return errors
}

func maxLen(errors []ValidationError, field, value string, max int) []ValidationError {
	if len(value) > max {
		errors = append(errors, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s exceeds maximum length of %d", field, max),
		})
	}
	return errors
}

// ValidateArticle validates an article record
func (v *Validator) ValidateArticle(article *models.Article) []ValidationError {
	var errors []ValidationError

	errors = required(errors, "site_owner", article.SiteOwner)
	errors = required(errors, "title", article.Title)
	errors = required(errors, "authors_text", article.AuthorsText)

	errors = maxLen(errors, "title", article.Title, MaxTitleLen)
	errors = maxLen(errors, "authors_text", article.AuthorsText, MaxAuthorsTextLen)
	errors = maxLen(errors, "doi", article.DOI, MaxDOILen)
	errors = maxLen(errors, "code_doi", article.CodeDOI, MaxDOILen)
	errors = maxLen(errors, "data_doi", article.DataDOI, MaxDOILen)
	errors = maxLen(errors, "journal", article.Journal, MaxJournalLen)
	errors = maxLen(errors, "article_url", article.ArticleURL, MaxURLLen)
	errors = maxLen(errors, "paper_abstract", article.PaperAbstract, MaxAbstractLen)
	errors = maxLen(errors, "code_data_abstract", article.CodeDataAbstract, MaxAbstractLen)
	errors = maxLen(errors, "description_header", article.DescriptionHeader, MaxDescriptionHeaderLen)
	errors = maxLen(errors, "notes_for_staff", article.NotesForStaff, MaxNotesLen)
	errors = maxLen(errors, "admin_notes", article.AdminNotes, MaxNotesLen)
	errors = maxLen(errors, "manual_citation", article.ManualCitation, MaxManualCitationLen)
	errors = maxLen(errors, "month", article.Month, MaxBibtexFieldLen)
	errors = maxLen(errors, "year", article.Year, MaxBibtexFieldLen)
	errors = maxLen(errors, "volume", article.Volume, MaxBibtexFieldLen)
	errors = maxLen(errors, "number", article.Number, MaxBibtexFieldLen)
	errors = maxLen(errors, "pages", article.Pages, MaxBibtexFieldLen)

	if article.Status != "" && !models.ValidArticleStatuses[article.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published",
			Value:   string(article.Status),
		})
	}
	if article.ContentLicense != "" && !models.ValidContentLicenses[article.ContentLicense] {
		errors = append(errors, ValidationError{Field: "content_license", Message: "content license is not in the allowed set", Value: article.ContentLicense})
	}
	if article.CodeLicense != "" && !models.ValidCodeLicenses[article.CodeLicense] {
		errors = append(errors, ValidationError{Field: "code_license", Message: "code license is not in the allowed set", Value: article.CodeLicense})
	}
	if article.CompendiumType != "" && !models.ValidCompendiumTypes[article.CompendiumType] {
		errors = append(errors, ValidationError{Field: "compendium_type", Message: "compendium type is not in the allowed set", Value: article.CompendiumType})
	}
	if article.PrimaryResearchField != "" && !models.ValidResearchFields[article.PrimaryResearchField] {
		errors = append(errors, ValidationError{Field: "primary_research_field", Message: "research field is not in the allowed set", Value: article.PrimaryResearchField})
	}
	if article.SecondaryResearchField != "" && !models.ValidResearchFields[article.SecondaryResearchField] {
		errors = append(errors, ValidationError{Field: "secondary_research_field", Message: "research field is not in the allowed set", Value: article.SecondaryResearchField})
	}

	for i, tag := range article.ArticleTags {
		if tag.Name == "" {
			errors = append(errors, ValidationError{Field: fmt.Sprintf("article_tags[%d].name", i), Message: "tag name is required"})
		}
		if tag.TagType != "" && !models.ValidTagTypes[tag.TagType] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("article_tags[%d].tag_type", i),
				Message: "invalid tag type, must be one of: folksonomic, curated",
				Value:   string(tag.TagType),
			})
		}
	}

	return errors
}

// ValidateContributor validates a contributor record
func (v *Validator) ValidateContributor(contributor *models.Contributor) []ValidationError {
	var errors []ValidationError

	errors = required(errors, "user_id", contributor.UserID)
	if contributor.ArticleID == 0 {
		errors = append(errors, ValidationError{Field: "article_id", Message: "article_id is required"})
	}
	if contributor.Role != "" && !models.ValidContributorRoles[contributor.Role] {
		errors = append(errors, ValidationError{
			Field:   "role",
			Message: "invalid role, must be one of: author, editor, reviewer, curator",
			Value:   string(contributor.Role),
		})
	}

	return errors
}

// ValidateVerification validates a verification record
func (v *Validator) ValidateVerification(verification *models.Verification) []ValidationError {
	var errors []ValidationError

	if verification.ArticleID == 0 {
		errors = append(errors, ValidationError{Field: "article_id", Message: "article_id is required"})
	}
	if verification.Status != "" && !models.ValidVerificationStatuses[verification.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: pending, running, passed, failed",
			Value:   string(verification.Status),
		})
	}
	errors = maxLen(errors, "requestid", verification.RequestID, MaxRequestIDLen)

	return errors
}

// ValidateEntry validates a table-of-contents entry. Uniqueness of
// entry_order and slug is checked against the store by the service; this
// covers field-level constraints.
func (v *Validator) ValidateEntry(entry *models.TableOfContentsEntry) []ValidationError {
	var errors []ValidationError

	errors = required(errors, "entry_text", entry.EntryText)
	errors = maxLen(errors, "entry_text", entry.EntryText, MaxEntryTextLen)
	errors = maxLen(errors, "description", entry.Description, MaxEntryDescriptionLen)

	if entry.Slug != "" && !slugRegex.MatchString(entry.Slug) {
		errors = append(errors, ValidationError{
			Field:   "slug",
			Message: "slug must contain only lowercase letters, numbers, hyphens and dots",
			Value:   entry.Slug,
		})
	}

	return errors
}

// ValidateEntryType validates a compendium-type mapping
func (v *Validator) ValidateEntryType(entryType *models.EntryType) []ValidationError {
	var errors []ValidationError

	if entryType.CompendiumType == "" {
		errors = append(errors, ValidationError{Field: "compendium_type", Message: "compendium_type is required"})
	} else if !models.ValidCompendiumTypes[entryType.CompendiumType] {
		errors = append(errors, ValidationError{Field: "compendium_type", Message: "compendium type is not in the allowed set", Value: entryType.CompendiumType})
	}
	if entryType.TableOfContentsEntryID == 0 {
		errors = append(errors, ValidationError{Field: "table_of_contents_entry_id", Message: "table_of_contents_entry_id is required"})
	}

	return errors
}

// ValidateOption validates a deprecated table-of-contents option row
func (v *Validator) ValidateOption(option *models.TableOfContentsOption) []ValidationError {
	var errors []ValidationError

	if option.CompendiumType == "" {
		errors = append(errors, ValidationError{Field: "compendium_type", Message: "compendium_type is required"})
	} else if !models.ValidCompendiumTypes[option.CompendiumType] {
		errors = append(errors, ValidationError{Field: "compendium_type", Message: "compendium type is not in the allowed set", Value: option.CompendiumType})
	}

	return errors
}
