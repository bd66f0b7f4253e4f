package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/repository"
	"github.com/codersquid/researchcompendia/internal/storage"
	"github.com/codersquid/researchcompendia/internal/validation"
)

// compendiaService is the concrete implementation of CompendiaService
type compendiaService struct {
	repos     *repository.Repositories
	store     storage.Storage
	validator *validation.Validator
	log       zerolog.Logger
}

// newCompendiaService creates a new CompendiaService
func newCompendiaService(repos *repository.Repositories, store storage.Storage, validator *validation.Validator, log zerolog.Logger) *compendiaService {
	return &compendiaService{
		repos:     repos,
		store:     store,
		validator: validator,
		log:       log.With().Str("service", "compendia").Logger(),
	}
}

// Create validates and persists a new article together with its tag sets.
// Contributors are not touched; callers replace them explicitly.
func (s *compendiaService) Create(ctx context.Context, article *models.Article) error {
	if article.Status == "" {
		article.Status = models.StatusDraft
	}
	if article.DescriptionHeader == "" {
		article.DescriptionHeader = "Code and Data Abstract"
	}

	if errs := s.validator.ValidateArticle(article); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	if err := s.saveTags(ctx, article); err != nil {
		return err
	}

	s.log.Info().Int64("article_id", article.ID).Str("title", article.Title).Msg("Article created")
	return nil
}

// Update validates and persists an article's core fields and tag sets. The
// creation instant is immutable, so the canonical path never moves.
func (s *compendiaService) Update(ctx context.Context, article *models.Article) error {
	if errs := s.validator.ValidateArticle(article); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	if err := s.saveTags(ctx, article); err != nil {
		return err
	}

	s.log.Info().Int64("article_id", article.ID).Msg("Article updated")
	return nil
}

func (s *compendiaService) saveTags(ctx context.Context, article *models.Article) error {
	if article.Tags != nil {
		if err := s.repos.Article.SetTags(ctx, article.ID, article.Tags); err != nil {
			return fmt.Errorf("failed to save tags: %w", err)
		}
	}
	if article.ArticleTags != nil {
		if err := s.repos.Article.SetArticleTags(ctx, article.ID, article.ArticleTags); err != nil {
			return fmt.Errorf("failed to save article tags: %w", err)
		}
	}
	return nil
}

// Get retrieves an article with both tag sets attached
func (s *compendiaService) Get(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return nil, nil
	}

	free, typed, err := s.repos.Article.GetTags(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article tags: %w", err)
	}
	article.Tags = free
	article.ArticleTags = typed
	return article, nil
}

// List retrieves all articles ordered by title
func (s *compendiaService) List(ctx context.Context) ([]*models.Article, error) {
	return s.repos.Article.List(ctx)
}

// Delete removes an article and everything that cascades with it
func (s *compendiaService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("article_id", id).Msg("Article deleted")
	return nil
}

// ReplaceContributors swaps the full contributor set of an article. This is
// the explicit second step after saving core fields.
func (s *compendiaService) ReplaceContributors(ctx context.Context, articleID int64, contributors []*models.Contributor) error {
	var errs []validation.ValidationError
	for _, contributor := range contributors {
		contributor.ArticleID = articleID
		errs = append(errs, s.validator.ValidateContributor(contributor)...)
	}
	if len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	exists, err := s.repos.Article.Exists(ctx, articleID)
	if err != nil {
		return fmt.Errorf("failed to check article: %w", err)
	}
	if !exists {
		return repository.ErrMissingParent
	}

	if err := s.repos.Contributor.ReplaceForArticle(ctx, articleID, contributors); err != nil {
		return fmt.Errorf("failed to replace contributors: %w", err)
	}

	s.log.Info().Int64("article_id", articleID).Int("count", len(contributors)).Msg("Contributors replaced")
	return nil
}

// ListContributors retrieves an article's contributors in citation order
func (s *compendiaService) ListContributors(ctx context.Context, articleID int64) ([]*models.Contributor, error) {
	return s.repos.Contributor.ListByArticle(ctx, articleID)
}

// AddContributor appends a single contributor without touching the rest of the
// article's set
func (s *compendiaService) AddContributor(ctx context.Context, contributor *models.Contributor) error {
	if errs := s.validator.ValidateContributor(contributor); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	exists, err := s.repos.Article.Exists(ctx, contributor.ArticleID)
	if err != nil {
		return fmt.Errorf("failed to check article: %w", err)
	}
	if !exists {
		return repository.ErrMissingParent
	}

	if err := s.repos.Contributor.Create(ctx, contributor); err != nil {
		return fmt.Errorf("failed to add contributor: %w", err)
	}

	s.log.Info().
		Int64("article_id", contributor.ArticleID).
		Str("user_id", contributor.UserID).
		Msg("Contributor added")
	return nil
}

// GetContributor retrieves a single contributor row
func (s *compendiaService) GetContributor(ctx context.Context, id int64) (*models.Contributor, error) {
	return s.repos.Contributor.GetByID(ctx, id)
}

// RemoveContributor deletes a single contributor row
func (s *compendiaService) RemoveContributor(ctx context.Context, id int64) error {
	if err := s.repos.Contributor.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("contributor_id", id).Msg("Contributor removed")
	return nil
}

// AttachFile stores uploaded content under the slot's category namespace and
// records the resulting key on the article. Returns the storage key.
func (s *compendiaService) AttachFile(ctx context.Context, articleID int64, slot models.FileSlot, filename string, r io.Reader, size int64) (string, error) {
	category := models.UploadCategory(slot)
	if category == "" {
		return "", fmt.Errorf("unknown file slot: %s", slot)
	}

	article, err := s.repos.Article.GetByID(ctx, articleID)
	if err != nil {
		return "", fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return "", repository.ErrMissingParent
	}

	key := storage.UploadPath(category, filename)
	if err := s.store.Save(ctx, key, r, size); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	article.SetFile(slot, key)
	if err := s.repos.Article.Update(ctx, article); err != nil {
		return "", fmt.Errorf("failed to record upload: %w", err)
	}

	s.log.Info().
		Int64("article_id", articleID).
		Str("slot", string(slot)).
		Str("key", key).
		Msg("File attached")
	return key, nil
}
