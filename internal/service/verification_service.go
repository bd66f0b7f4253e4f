package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/repository"
	"github.com/codersquid/researchcompendia/internal/storage"
	"github.com/codersquid/researchcompendia/internal/validation"
)

// verificationService is the concrete implementation of VerificationService
type verificationService struct {
	repos     *repository.Repositories
	store     storage.Storage
	validator *validation.Validator
	log       zerolog.Logger
}

// newVerificationService creates a new VerificationService
func newVerificationService(repos *repository.Repositories, store storage.Storage, validator *validation.Validator, log zerolog.Logger) *verificationService {
	return &verificationService{
		repos:     repos,
		store:     store,
		validator: validator,
		log:       log.With().Str("service", "verification").Logger(),
	}
}

// Create validates and persists a verification result. The slug is assigned
// inside the repository once the row id is known and never changes after.
func (s *verificationService) Create(ctx context.Context, verification *models.Verification) error {
	if verification.Status == "" {
		verification.Status = models.VerificationPending
	}
	if verification.RequestID == "" {
		verification.RequestID = uuid.New().String()
	}

	if errs := s.validator.ValidateVerification(verification); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	exists, err := s.repos.Article.Exists(ctx, verification.ArticleID)
	if err != nil {
		return fmt.Errorf("failed to check article: %w", err)
	}
	if !exists {
		return repository.ErrMissingParent
	}

	if err := s.repos.Verification.Create(ctx, verification); err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}

	s.log.Info().
		Int64("verification_id", verification.ID).
		Int64("article_id", verification.ArticleID).
		Str("slug", verification.Slug).
		Msg("Verification recorded")
	return nil
}

// Update writes a verification's mutable fields
func (s *verificationService) Update(ctx context.Context, verification *models.Verification) error {
	if errs := s.validator.ValidateVerification(verification); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}
	if err := s.repos.Verification.Update(ctx, verification); err != nil {
		return fmt.Errorf("failed to update verification: %w", err)
	}
	return nil
}

// Get retrieves a verification by ID
func (s *verificationService) Get(ctx context.Context, id int64) (*models.Verification, error) {
	return s.repos.Verification.GetByID(ctx, id)
}

// GetBySlug retrieves a verification by its slug within the owning article
func (s *verificationService) GetBySlug(ctx context.Context, articleID int64, slug string) (*models.Verification, error) {
	return s.repos.Verification.GetBySlug(ctx, articleID, slug)
}

// ListForArticle retrieves an article's verifications, newest first
func (s *verificationService) ListForArticle(ctx context.Context, articleID int64) ([]*models.Verification, error) {
	return s.repos.Verification.ListByArticle(ctx, articleID)
}

// AttachArchive stores a results archive under the results namespace and
// records its key on the verification
func (s *verificationService) AttachArchive(ctx context.Context, verificationID int64, filename string, r io.Reader, size int64) (string, error) {
	verification, err := s.repos.Verification.GetByID(ctx, verificationID)
	if err != nil {
		return "", fmt.Errorf("failed to get verification: %w", err)
	}
	if verification == nil {
		return "", repository.ErrMissingParent
	}

	key := storage.UploadPath(storage.CategoryResults, filename)
	if err := s.store.Save(ctx, key, r, size); err != nil {
		return "", fmt.Errorf("failed to store archive: %w", err)
	}

	verification.ArchiveFile = key
	if err := s.repos.Verification.Update(ctx, verification); err != nil {
		return "", fmt.Errorf("failed to record archive: %w", err)
	}

	s.log.Info().
		Int64("verification_id", verificationID).
		Str("key", key).
		Msg("Verification archive attached")
	return key, nil
}
