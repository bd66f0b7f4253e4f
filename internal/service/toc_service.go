package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/repository"
	"github.com/codersquid/researchcompendia/internal/validation"
)

// tocService is the concrete implementation of TOCService
type tocService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

// newTOCService creates a new TOCService
func newTOCService(repos *repository.Repositories, validator *validation.Validator, log zerolog.Logger) *tocService {
	return &tocService{
		repos:     repos,
		validator: validator,
		log:       log.With().Str("service", "toc").Logger(),
	}
}

// CreateEntry validates and persists a table-of-contents entry. The slug is
// derived from entry_text when not supplied; entry_order and slug must be
// unique across all entries.
func (s *tocService) CreateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error {
	if entry.Slug == "" {
		entry.Slug = models.Slugify(entry.EntryText)
	}

	if errs := s.validator.ValidateEntry(entry); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	if err := s.checkEntryUniqueness(ctx, entry, 0); err != nil {
		return err
	}

	if err := s.repos.TOC.CreateEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	s.log.Info().Int64("entry_id", entry.ID).Str("slug", entry.Slug).Msg("Table of contents entry created")
	return nil
}

// UpdateEntry validates and persists entry changes. The slug is editable but
// must remain unique.
func (s *tocService) UpdateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error {
	if entry.Slug == "" {
		entry.Slug = models.Slugify(entry.EntryText)
	}

	if errs := s.validator.ValidateEntry(entry); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	if err := s.checkEntryUniqueness(ctx, entry, entry.ID); err != nil {
		return err
	}

	if err := s.repos.TOC.UpdateEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return nil
}

// checkEntryUniqueness surfaces duplicate entry_order or slug as validation
// errors before the insert hits the database constraint
func (s *tocService) checkEntryUniqueness(ctx context.Context, entry *models.TableOfContentsEntry, excludeID int64) error {
	orderTaken, err := s.repos.TOC.EntryOrderExists(ctx, entry.EntryOrder, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check entry order: %w", err)
	}
	slugTaken, err := s.repos.TOC.EntrySlugExists(ctx, entry.Slug, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check entry slug: %w", err)
	}

	var errs []validation.ValidationError
	if orderTaken {
		errs = append(errs, validation.ValidationError{Field: "entry_order", Message: "entry_order is already in use", Value: entry.EntryOrder})
	}
	if slugTaken {
		errs = append(errs, validation.ValidationError{Field: "slug", Message: "slug is already in use", Value: entry.Slug})
	}
	if len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}
	return nil
}

// GetEntry retrieves a single entry by ID
func (s *tocService) GetEntry(ctx context.Context, id int64) (*models.TableOfContentsEntry, error) {
	return s.repos.TOC.GetEntry(ctx, id)
}

// ListEntries retrieves all entries ordered by entry_order
func (s *tocService) ListEntries(ctx context.Context) ([]*models.TableOfContentsEntry, error) {
	return s.repos.TOC.ListEntries(ctx)
}

// DeleteEntry removes an entry and its compendium-type mappings
func (s *tocService) DeleteEntry(ctx context.Context, id int64) error {
	return s.repos.TOC.DeleteEntry(ctx, id)
}

// CreateEntryType validates and persists a compendium-type mapping
func (s *tocService) CreateEntryType(ctx context.Context, entryType *models.EntryType) error {
	if entryType.CompendiumType == "" {
		entryType.CompendiumType = models.DefaultCompendiumType
	}

	if errs := s.validator.ValidateEntryType(entryType); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	if err := s.repos.TOC.CreateEntryType(ctx, entryType); err != nil {
		return err
	}

	s.log.Info().
		Str("compendium_type", entryType.CompendiumType).
		Int64("entry_id", entryType.TableOfContentsEntryID).
		Msg("Entry type mapping created")
	return nil
}

// ListEntryTypes retrieves all compendium-type mappings
func (s *tocService) ListEntryTypes(ctx context.Context) ([]*models.EntryType, error) {
	return s.repos.TOC.ListEntryTypes(ctx)
}

// DeleteEntryType removes a compendium-type mapping
func (s *tocService) DeleteEntryType(ctx context.Context, id int64) error {
	return s.repos.TOC.DeleteEntryType(ctx, id)
}

// CreateOption validates and persists a deprecated table-of-contents option.
// The rows predate the EntryType mapping; writes are still accepted so the
// remaining data stays maintainable.
func (s *tocService) CreateOption(ctx context.Context, option *models.TableOfContentsOption) error {
	if errs := s.validator.ValidateOption(option); len(errs) > 0 {
		return &ValidationFailedError{Errors: errs}
	}

	if err := s.repos.TOC.CreateOption(ctx, option); err != nil {
		return err
	}

	s.log.Info().Str("compendium_type", option.CompendiumType).Msg("Table of contents option created")
	return nil
}

// ListOptions retrieves all deprecated option rows
func (s *tocService) ListOptions(ctx context.Context) ([]*models.TableOfContentsOption, error) {
	return s.repos.TOC.ListOptions(ctx)
}

// Sections builds the navigable table of contents: entries in display order,
// each with the articles whose compendium type maps to it
func (s *tocService) Sections(ctx context.Context) ([]models.Section, error) {
	entries, err := s.repos.TOC.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	entryTypes, err := s.repos.TOC.ListEntryTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry types: %w", err)
	}

	typesByEntry := make(map[int64][]string)
	for _, entryType := range entryTypes {
		typesByEntry[entryType.TableOfContentsEntryID] = append(
			typesByEntry[entryType.TableOfContentsEntryID], entryType.CompendiumType)
	}

	sections := make([]models.Section, 0, len(entries))
	for _, entry := range entries {
		section := models.Section{Entry: *entry, CompendiumTypes: typesByEntry[entry.ID]}
		if len(section.CompendiumTypes) > 0 {
			articles, err := s.repos.Article.ListByCompendiumTypes(ctx, section.CompendiumTypes)
			if err != nil {
				return nil, fmt.Errorf("failed to list articles for section %q: %w", entry.Slug, err)
			}
			section.Articles = articles
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// SectionBySlug builds a single table-of-contents section for the entry with
// the given slug, or nil when no such entry exists
func (s *tocService) SectionBySlug(ctx context.Context, slug string) (*models.Section, error) {
	entry, err := s.repos.TOC.GetEntryBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if entry == nil {
		return nil, nil
	}

	entryTypes, err := s.repos.TOC.ListEntryTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry types: %w", err)
	}

	section := models.Section{Entry: *entry}
	for _, entryType := range entryTypes {
		if entryType.TableOfContentsEntryID == entry.ID {
			section.CompendiumTypes = append(section.CompendiumTypes, entryType.CompendiumType)
		}
	}
	if len(section.CompendiumTypes) > 0 {
		articles, err := s.repos.Article.ListByCompendiumTypes(ctx, section.CompendiumTypes)
		if err != nil {
			return nil, fmt.Errorf("failed to list articles for section %q: %w", slug, err)
		}
		section.Articles = articles
	}
	return &section, nil
}
