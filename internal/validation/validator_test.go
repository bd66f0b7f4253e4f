package validation

import (
	"strings"
	"testing"

	"github.com/codersquid/researchcompendia/internal/models"
)

func validArticle() *models.Article {
	return &models.Article{
		SiteOwner:   "user-1",
		Title:       "Reproducible Fluid Dynamics",
		AuthorsText: "A. Author, B. Author",
		Status:      models.StatusDraft,
	}
}

func TestValidateArticle(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		mutate     func(*models.Article)
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid article with required fields only",
			mutate:     func(a *models.Article) {},
			wantErrors: 0,
		},
		{
			name:       "missing title - required field",
			mutate:     func(a *models.Article) { a.Title = "" },
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "missing site owner - required field",
			mutate:     func(a *models.Article) { a.SiteOwner = "" },
			wantErrors: 1,
			wantFields: []string{"site_owner"},
		},
		{
			name:       "missing authors text - required field",
			mutate:     func(a *models.Article) { a.AuthorsText = "" },
			wantErrors: 1,
			wantFields: []string{"authors_text"},
		},
		{
			name:       "title over max length",
			mutate:     func(a *models.Article) { a.Title = strings.Repeat("x", MaxTitleLen+1) },
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "invalid status - not in allowed values",
			mutate:     func(a *models.Article) { a.Status = "archived" },
			wantErrors: 1,
			wantFields: []string{"status"},
		},
		{
			name:       "invalid content license",
			mutate:     func(a *models.Article) { a.ContentLicense = "WTFPL" },
			wantErrors: 1,
			wantFields: []string{"content_license"},
		},
		{
			name:       "valid code license passes",
			mutate:     func(a *models.Article) { a.CodeLicense = "MIT" },
			wantErrors: 0,
		},
		{
			name:       "invalid compendium type",
			mutate:     func(a *models.Article) { a.CompendiumType = "magazine" },
			wantErrors: 1,
			wantFields: []string{"compendium_type"},
		},
		{
			name: "invalid research fields",
			mutate: func(a *models.Article) {
				a.PrimaryResearchField = "Alchemy"
				a.SecondaryResearchField = "Phrenology"
			},
			wantErrors: 2,
			wantFields: []string{"primary_research_field", "secondary_research_field"},
		},
		{
			name: "invalid tag type on association",
			mutate: func(a *models.Article) {
				a.ArticleTags = []models.ArticleTag{{Name: "python", TagType: "editorial"}}
			},
			wantErrors: 1,
			wantFields: []string{"article_tags[0].tag_type"},
		},
		{
			name: "empty tag name on association",
			mutate: func(a *models.Article) {
				a.ArticleTags = []models.ArticleTag{{Name: "", TagType: models.TagTypeFolksonomic}}
			},
			wantErrors: 1,
			wantFields: []string{"article_tags[0].name"},
		},
		{
			name: "multiple validation errors",
			mutate: func(a *models.Article) {
				a.Title = ""
				a.SiteOwner = ""
				a.Status = "unknown"
				a.CodeLicense = "Proprietary-Mystery"
			},
			wantErrors: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := validArticle()
			tt.mutate(article)

			errors := validator.ValidateArticle(article)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateArticle() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}

			for _, wantField := range tt.wantFields {
				found := false
				for _, err := range errors {
					if err.Field == wantField {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected error on field %q, got %v", wantField, errors)
				}
			}
		})
	}
}

func TestValidateContributor(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name        string
		contributor *models.Contributor
		wantErrors  int
	}{
		{
			name:        "valid contributor",
			contributor: &models.Contributor{UserID: "user-1", ArticleID: 1, Role: models.RoleAuthor},
			wantErrors:  0,
		},
		{
			name:        "role is optional",
			contributor: &models.Contributor{UserID: "user-1", ArticleID: 1},
			wantErrors:  0,
		},
		{
			name:        "missing user",
			contributor: &models.Contributor{ArticleID: 1},
			wantErrors:  1,
		},
		{
			name:        "missing article",
			contributor: &models.Contributor{UserID: "user-1"},
			wantErrors:  1,
		},
		{
			name:        "invalid role",
			contributor: &models.Contributor{UserID: "user-1", ArticleID: 1, Role: "benefactor"},
			wantErrors:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateContributor(tt.contributor)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateContributor() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateVerification(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name         string
		verification *models.Verification
		wantErrors   int
	}{
		{
			name:         "valid verification",
			verification: &models.Verification{ArticleID: 1, Status: models.VerificationPassed},
			wantErrors:   0,
		},
		{
			name:         "missing article",
			verification: &models.Verification{Status: models.VerificationPending},
			wantErrors:   1,
		},
		{
			name:         "invalid status",
			verification: &models.Verification{ArticleID: 1, Status: "exploded"},
			wantErrors:   1,
		},
		{
			name:         "request id over max length",
			verification: &models.Verification{ArticleID: 1, RequestID: strings.Repeat("a", MaxRequestIDLen+1)},
			wantErrors:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateVerification(tt.verification)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateVerification() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateEntry(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		entry      *models.TableOfContentsEntry
		wantErrors int
	}{
		{
			name:       "valid entry",
			entry:      &models.TableOfContentsEntry{EntryText: "Computational Science", EntryOrder: 1, Slug: "computational-science"},
			wantErrors: 0,
		},
		{
			name:       "missing entry text",
			entry:      &models.TableOfContentsEntry{EntryOrder: 1, Slug: "x"},
			wantErrors: 1,
		},
		{
			name:       "entry text over max length",
			entry:      &models.TableOfContentsEntry{EntryText: strings.Repeat("x", MaxEntryTextLen+1), EntryOrder: 1, Slug: "x"},
			wantErrors: 1,
		},
		{
			name:       "malformed slug",
			entry:      &models.TableOfContentsEntry{EntryText: "Entry", EntryOrder: 1, Slug: "Not A Slug"},
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateEntry(tt.entry)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateEntry() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateEntryType(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		entryType  *models.EntryType
		wantErrors int
	}{
		{
			name:       "valid mapping",
			entryType:  &models.EntryType{CompendiumType: "software", TableOfContentsEntryID: 1},
			wantErrors: 0,
		},
		{
			name:       "missing compendium type",
			entryType:  &models.EntryType{TableOfContentsEntryID: 1},
			wantErrors: 1,
		},
		{
			name:       "unknown compendium type",
			entryType:  &models.EntryType{CompendiumType: "magazine", TableOfContentsEntryID: 1},
			wantErrors: 1,
		},
		{
			name:       "missing entry reference",
			entryType:  &models.EntryType{CompendiumType: "software"},
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateEntryType(tt.entryType)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateEntryType() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}
