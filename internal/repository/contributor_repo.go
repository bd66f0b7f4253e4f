package repository

import (
	"context"
	"database/sql"

	"github.com/codersquid/researchcompendia/internal/database"
	"github.com/codersquid/researchcompendia/internal/models"
)

// contributorRepo is the concrete implementation of ContributorRepository
type contributorRepo struct {
	db *database.DB
}

// NewContributorRepo creates a new contributor repository
func NewContributorRepo(db *database.DB) ContributorRepository {
	return &contributorRepo{db: db}
}

// Create inserts a new contributor row
func (r *contributorRepo) Create(ctx context.Context, contributor *models.Contributor) error {
	query := `
		INSERT INTO contributors (user_id, article_id, role, citation_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	var citationOrder sql.NullInt64
	if contributor.CitationOrder != nil {
		citationOrder = sql.NullInt64{Int64: int64(*contributor.CitationOrder), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		contributor.UserID, contributor.ArticleID, contributor.Role, citationOrder,
	).Scan(&contributor.ID, &contributor.CreatedAt, &contributor.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrMissingParent
	}
	return err
}

func scanContributor(scan func(dest ...interface{}) error) (*models.Contributor, error) {
	var contributor models.Contributor
	var citationOrder sql.NullInt64

	err := scan(
		&contributor.ID, &contributor.UserID, &contributor.ArticleID,
		&contributor.Role, &citationOrder,
		&contributor.CreatedAt, &contributor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if citationOrder.Valid {
		order := int(citationOrder.Int64)
		contributor.CitationOrder = &order
	}
	return &contributor, nil
}

// GetByID retrieves a contributor by ID
func (r *contributorRepo) GetByID(ctx context.Context, id int64) (*models.Contributor, error) {
	query := `
		SELECT id, user_id, article_id, role, citation_order, created_at, updated_at
		FROM contributors WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	contributor, err := scanContributor(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contributor, nil
}

// ListByArticle retrieves an article's contributors ordered by citation
// order, then user. Rows without a citation order sort last.
func (r *contributorRepo) ListByArticle(ctx context.Context, articleID int64) ([]*models.Contributor, error) {
	query := `
		SELECT id, user_id, article_id, role, citation_order, created_at, updated_at
		FROM contributors WHERE article_id = $1
		ORDER BY citation_order NULLS LAST, user_id
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contributors []*models.Contributor
	for rows.Next() {
		contributor, err := scanContributor(rows.Scan)
		if err != nil {
			return nil, err
		}
		contributors = append(contributors, contributor)
	}
	return contributors, rows.Err()
}

// Delete removes a contributor row
func (r *contributorRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM contributors WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReplaceForArticle swaps the full contributor set of an article in one
// transaction. This is the explicit second step of the two-step article save.
func (r *contributorRepo) ReplaceForArticle(ctx context.Context, articleID int64, contributors []*models.Contributor) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM contributors WHERE article_id = $1", articleID); err != nil {
		return err
	}

	query := `
		INSERT INTO contributors (user_id, article_id, role, citation_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	for _, contributor := range contributors {
		contributor.ArticleID = articleID
		var citationOrder sql.NullInt64
		if contributor.CitationOrder != nil {
			citationOrder = sql.NullInt64{Int64: int64(*contributor.CitationOrder), Valid: true}
		}
		err := tx.QueryRowContext(ctx, query,
			contributor.UserID, articleID, contributor.Role, citationOrder,
		).Scan(&contributor.ID, &contributor.CreatedAt, &contributor.UpdatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrMissingParent
			}
			return err
		}
	}

	return tx.Commit()
}
