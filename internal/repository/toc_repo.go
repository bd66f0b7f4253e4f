package repository

import (
	"context"
	"database/sql"

	"github.com/codersquid/researchcompendia/internal/database"
	"github.com/codersquid/researchcompendia/internal/models"
)

// tocRepo is the concrete implementation of TOCRepository
type tocRepo struct {
	db *database.DB
}

// NewTOCRepo creates a new table-of-contents repository
func NewTOCRepo(db *database.DB) TOCRepository {
	return &tocRepo{db: db}
}

// CreateEntry inserts a new table-of-contents entry. entry_order and slug
// uniqueness are backed by database constraints.
func (r *tocRepo) CreateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO toc_entries (entry_text, entry_order, description, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, entry.EntryText, entry.EntryOrder, entry.Description, entry.Slug).Scan(&entry.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// UpdateEntry writes an entry's fields, including an edited slug
func (r *tocRepo) UpdateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE toc_entries SET entry_text = $2, entry_order = $3, description = $4, slug = $5
		WHERE id = $1
	`, entry.ID, entry.EntryText, entry.EntryOrder, entry.Description, entry.Slug)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetEntry retrieves an entry by ID
func (r *tocRepo) GetEntry(ctx context.Context, id int64) (*models.TableOfContentsEntry, error) {
	var entry models.TableOfContentsEntry
	err := r.db.QueryRowContext(ctx, `
		SELECT id, entry_text, entry_order, description, slug FROM toc_entries WHERE id = $1
	`, id).Scan(&entry.ID, &entry.EntryText, &entry.EntryOrder, &entry.Description, &entry.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetEntryBySlug retrieves an entry by slug
func (r *tocRepo) GetEntryBySlug(ctx context.Context, slug string) (*models.TableOfContentsEntry, error) {
	var entry models.TableOfContentsEntry
	err := r.db.QueryRowContext(ctx, `
		SELECT id, entry_text, entry_order, description, slug FROM toc_entries WHERE slug = $1
	`, slug).Scan(&entry.ID, &entry.EntryText, &entry.EntryOrder, &entry.Description, &entry.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries retrieves all entries ordered by entry_order ascending
func (r *tocRepo) ListEntries(ctx context.Context) ([]*models.TableOfContentsEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entry_text, entry_order, description, slug FROM toc_entries ORDER BY entry_order
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.TableOfContentsEntry
	for rows.Next() {
		var entry models.TableOfContentsEntry
		if err := rows.Scan(&entry.ID, &entry.EntryText, &entry.EntryOrder, &entry.Description, &entry.Slug); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// DeleteEntry removes an entry. EntryType rows referencing it cascade.
func (r *tocRepo) DeleteEntry(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM toc_entries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// EntryOrderExists checks whether another entry already uses the given order
func (r *tocRepo) EntryOrderExists(ctx context.Context, order int, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM toc_entries WHERE entry_order = $1 AND id <> $2)",
		order, excludeID,
	).Scan(&exists)
	return exists, err
}

// EntrySlugExists checks whether another entry already uses the given slug
func (r *tocRepo) EntrySlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM toc_entries WHERE slug = $1 AND id <> $2)",
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// CreateEntryType inserts a compendium-type mapping. compendium_type is
// unique across rows and the target entry must exist.
func (r *tocRepo) CreateEntryType(ctx context.Context, entryType *models.EntryType) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO entry_types (compendium_type, table_of_contents_entry_id)
		VALUES ($1, $2)
		RETURNING id
	`, entryType.CompendiumType, entryType.TableOfContentsEntryID).Scan(&entryType.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return ErrMissingParent
	}
	return err
}

// ListEntryTypes retrieves all compendium-type mappings
func (r *tocRepo) ListEntryTypes(ctx context.Context) ([]*models.EntryType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, compendium_type, table_of_contents_entry_id FROM entry_types ORDER BY compendium_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entryTypes []*models.EntryType
	for rows.Next() {
		var entryType models.EntryType
		if err := rows.Scan(&entryType.ID, &entryType.CompendiumType, &entryType.TableOfContentsEntryID); err != nil {
			return nil, err
		}
		entryTypes = append(entryTypes, &entryType)
	}
	return entryTypes, rows.Err()
}

// DeleteEntryType removes a compendium-type mapping
func (r *tocRepo) DeleteEntryType(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entry_types WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateOption inserts a deprecated table-of-contents option row
func (r *tocRepo) CreateOption(ctx context.Context, option *models.TableOfContentsOption) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO toc_options (compendium_type, description)
		VALUES ($1, $2)
		RETURNING id
	`, option.CompendiumType, option.Description).Scan(&option.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// ListOptions retrieves all deprecated option rows
func (r *tocRepo) ListOptions(ctx context.Context) ([]*models.TableOfContentsOption, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, compendium_type, description FROM toc_options ORDER BY compendium_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*models.TableOfContentsOption
	for rows.Next() {
		var option models.TableOfContentsOption
		if err := rows.Scan(&option.ID, &option.CompendiumType, &option.Description); err != nil {
			return nil, err
		}
		options = append(options, &option)
	}
	return options, rows.Err()
}
