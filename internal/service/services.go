package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/config"
	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/repository"
	"github.com/codersquid/researchcompendia/internal/storage"
	"github.com/codersquid/researchcompendia/internal/validation"
)

// ValidationFailedError carries field-level validation errors back to the
// caller before anything is persisted
type ValidationFailedError struct {
	Errors []validation.ValidationError
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d errors", len(e.Errors))
}

// CompendiaService defines the interface for article operations. Saving core
// fields and replacing contributors are deliberately separate steps so the
// contract is visible in the interface.
type CompendiaService interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Get(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
	Delete(ctx context.Context, id int64) error
	ReplaceContributors(ctx context.Context, articleID int64, contributors []*models.Contributor) error
	ListContributors(ctx context.Context, articleID int64) ([]*models.Contributor, error)
	AddContributor(ctx context.Context, contributor *models.Contributor) error
	GetContributor(ctx context.Context, id int64) (*models.Contributor, error)
	RemoveContributor(ctx context.Context, id int64) error
	AttachFile(ctx context.Context, articleID int64, slot models.FileSlot, filename string, r io.Reader, size int64) (string, error)
}

// VerificationService defines the interface for verification operations
type VerificationService interface {
	Create(ctx context.Context, verification *models.Verification) error
	Update(ctx context.Context, verification *models.Verification) error
	Get(ctx context.Context, id int64) (*models.Verification, error)
	GetBySlug(ctx context.Context, articleID int64, slug string) (*models.Verification, error)
	ListForArticle(ctx context.Context, articleID int64) ([]*models.Verification, error)
	AttachArchive(ctx context.Context, verificationID int64, filename string, r io.Reader, size int64) (string, error)
}

// TOCService defines the interface for table-of-contents taxonomy operations
type TOCService interface {
	CreateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error
	UpdateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error
	GetEntry(ctx context.Context, id int64) (*models.TableOfContentsEntry, error)
	ListEntries(ctx context.Context) ([]*models.TableOfContentsEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
	CreateEntryType(ctx context.Context, entryType *models.EntryType) error
	ListEntryTypes(ctx context.Context) ([]*models.EntryType, error)
	DeleteEntryType(ctx context.Context, id int64) error
	CreateOption(ctx context.Context, option *models.TableOfContentsOption) error
	ListOptions(ctx context.Context) ([]*models.TableOfContentsOption, error)
	Sections(ctx context.Context) ([]models.Section, error)
	SectionBySlug(ctx context.Context, slug string) (*models.Section, error)
}

// ExportService defines the interface for streaming exports
type ExportService interface {
	StreamCompendia(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Compendia    CompendiaService
	Verification VerificationService
	TOC          TOCService
	Export       ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, store storage.Storage, cfg *config.Config, log zerolog.Logger) *Services {
	validator := validation.NewValidator()

	return &Services{
		Compendia:    newCompendiaService(repos, store, validator, log),
		Verification: newVerificationService(repos, store, validator, log),
		TOC:          newTOCService(repos, validator, log),
		Export:       newExportService(repos, log),
	}
}
