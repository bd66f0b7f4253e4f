package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/codersquid/researchcompendia/internal/database"
	"github.com/codersquid/researchcompendia/internal/models"
)

// verificationRepo is the concrete implementation of VerificationRepository
type verificationRepo struct {
	db *database.DB
}

// NewVerificationRepo creates a new verification repository
func NewVerificationRepo(db *database.DB) VerificationRepository {
	return &verificationRepo{db: db}
}

const verificationColumns = `
	id, article_id, status, stdout, stderr, requestid, parameters,
	archive_info, archive_file, slug, created_at, updated_at`

// Create inserts a new verification and assigns its slug. The slug derives
// from the row's own id and creation instant, so it is computed inside the
// insert transaction once both are known. A slug collision means id reuse,
// which the sequence allocator rules out; if it happens anyway the
// configuration is broken and the error says so.
func (r *verificationRepo) Create(ctx context.Context, verification *models.Verification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO verifications (article_id, status, stdout, stderr, requestid, parameters, archive_info, archive_file, slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '')
		RETURNING id, created_at, updated_at
	`,
		verification.ArticleID, verification.Status, verification.Stdout,
		verification.Stderr, verification.RequestID,
		jsonOrEmpty(verification.Parameters), jsonOrEmpty(verification.ArchiveInfo),
		verification.ArchiveFile,
	).Scan(&verification.ID, &verification.CreatedAt, &verification.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMissingParent
		}
		return err
	}

	verification.Slug = verification.PopulateSlug()
	if _, err := tx.ExecContext(ctx,
		"UPDATE verifications SET slug = $2 WHERE id = $1",
		verification.ID, verification.Slug,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("verification slug %q already exists for article %d, id allocation is misconfigured: %w",
				verification.Slug, verification.ArticleID, ErrDuplicate)
		}
		return err
	}

	return tx.Commit()
}

// Update writes the mutable fields of a verification. The slug and the
// article reference never change after creation.
func (r *verificationRepo) Update(ctx context.Context, verification *models.Verification) error {
	now := time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE verifications SET
			status = $2, stdout = $3, stderr = $4, requestid = $5,
			parameters = $6, archive_info = $7, archive_file = $8, updated_at = $9
		WHERE id = $1
	`,
		verification.ID, verification.Status, verification.Stdout,
		verification.Stderr, verification.RequestID,
		jsonOrEmpty(verification.Parameters), jsonOrEmpty(verification.ArchiveInfo),
		verification.ArchiveFile, now,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	verification.UpdatedAt = now
	return nil
}

func scanVerification(scan func(dest ...interface{}) error) (*models.Verification, error) {
	var verification models.Verification
	var parameters, archiveInfo []byte

	err := scan(
		&verification.ID, &verification.ArticleID, &verification.Status,
		&verification.Stdout, &verification.Stderr, &verification.RequestID,
		&parameters, &archiveInfo, &verification.ArchiveFile,
		&verification.Slug, &verification.CreatedAt, &verification.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	verification.Parameters = parameters
	verification.ArchiveInfo = archiveInfo
	return &verification, nil
}

// GetByID retrieves a verification by ID
func (r *verificationRepo) GetByID(ctx context.Context, id int64) (*models.Verification, error) {
	query := `SELECT ` + verificationColumns + ` FROM verifications WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	verification, err := scanVerification(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return verification, nil
}

// GetBySlug retrieves a verification by its slug within the owning article
func (r *verificationRepo) GetBySlug(ctx context.Context, articleID int64, slug string) (*models.Verification, error) {
	query := `SELECT ` + verificationColumns + ` FROM verifications WHERE article_id = $1 AND slug = $2`
	row := r.db.QueryRowContext(ctx, query, articleID, slug)
	verification, err := scanVerification(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return verification, nil
}

// ListByArticle retrieves an article's verifications, newest first
func (r *verificationRepo) ListByArticle(ctx context.Context, articleID int64) ([]*models.Verification, error) {
	query := `SELECT ` + verificationColumns + ` FROM verifications WHERE article_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verifications []*models.Verification
	for rows.Next() {
		verification, err := scanVerification(rows.Scan)
		if err != nil {
			return nil, err
		}
		verifications = append(verifications, verification)
	}
	return verifications, rows.Err()
}

// Count returns the total number of verifications
func (r *verificationRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM verifications").Scan(&count)
	return count, err
}
