package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"github.com/codersquid/researchcompendia/internal/database"
	"github.com/codersquid/researchcompendia/internal/models"
)

// ErrDuplicate is returned when an insert or update would violate a
// uniqueness constraint (entry_order, compendium_type, slug within scope)
var ErrDuplicate = errors.New("duplicate value for unique field")

// ErrMissingParent is returned when a row references a parent that does not
// exist
var ErrMissingParent = errors.New("referenced parent row does not exist")

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
	ListByCompendiumTypes(ctx context.Context, types []string) ([]*models.Article, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	SetTags(ctx context.Context, articleID int64, tags []string) error
	SetArticleTags(ctx context.Context, articleID int64, tags []models.ArticleTag) error
	GetTags(ctx context.Context, articleID int64) ([]string, []models.ArticleTag, error)
	StreamAll(ctx context.Context, callback func(*models.Article) error) error
}

// ContributorRepository defines the interface for contributor data operations
type ContributorRepository interface {
	Create(ctx context.Context, contributor *models.Contributor) error
	GetByID(ctx context.Context, id int64) (*models.Contributor, error)
	ListByArticle(ctx context.Context, articleID int64) ([]*models.Contributor, error)
	Delete(ctx context.Context, id int64) error
	ReplaceForArticle(ctx context.Context, articleID int64, contributors []*models.Contributor) error
}

// VerificationRepository defines the interface for verification data operations
type VerificationRepository interface {
	Create(ctx context.Context, verification *models.Verification) error
	Update(ctx context.Context, verification *models.Verification) error
	GetByID(ctx context.Context, id int64) (*models.Verification, error)
	GetBySlug(ctx context.Context, articleID int64, slug string) (*models.Verification, error)
	ListByArticle(ctx context.Context, articleID int64) ([]*models.Verification, error)
	Count(ctx context.Context) (int, error)
}

// TOCRepository defines the interface for table-of-contents taxonomy operations
type TOCRepository interface {
	CreateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error
	UpdateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error
	GetEntry(ctx context.Context, id int64) (*models.TableOfContentsEntry, error)
	GetEntryBySlug(ctx context.Context, slug string) (*models.TableOfContentsEntry, error)
	ListEntries(ctx context.Context) ([]*models.TableOfContentsEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
	EntryOrderExists(ctx context.Context, order int, excludeID int64) (bool, error)
	EntrySlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)

	CreateEntryType(ctx context.Context, entryType *models.EntryType) error
	ListEntryTypes(ctx context.Context) ([]*models.EntryType, error)
	DeleteEntryType(ctx context.Context, id int64) error

	CreateOption(ctx context.Context, option *models.TableOfContentsOption) error
	ListOptions(ctx context.Context) ([]*models.TableOfContentsOption, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article      ArticleRepository
	Contributor  ContributorRepository
	Verification VerificationRepository
	TOC          TOCRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:      NewArticleRepo(db),
		Contributor:  NewContributorRepo(db),
		Verification: NewVerificationRepo(db),
		TOC:          NewTOCRepo(db),
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
