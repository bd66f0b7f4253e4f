package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/codersquid/researchcompendia/internal/database"
	"github.com/codersquid/researchcompendia/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `
	id, site_owner, status, title, authors_text, authorship, doi, journal,
	article_url, related_urls, month, year, volume, number, pages, bibjson,
	paper_abstract, description_header, code_data_abstract, manual_citation,
	notes_for_staff, admin_notes, content_license, code_license,
	compendium_type, primary_research_field, secondary_research_field,
	article_file, code_archive_file, code_doi, data_archive_file, data_doi,
	lecture_notes_archive_file, homework_archive_file, solution_archive_file,
	book_file, verification_archive_file, image_archive_file, legacy_id,
	created_at, updated_at`

// jsonOrEmpty normalizes a document column value so the jsonb column never
// receives NULL
func jsonOrEmpty(doc json.RawMessage) []byte {
	if len(doc) == 0 {
		return []byte("{}")
	}
	return doc
}

// Create inserts a new article and fills in its id and timestamps
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (
			site_owner, status, title, authors_text, authorship, doi, journal,
			article_url, related_urls, month, year, volume, number, pages, bibjson,
			paper_abstract, description_header, code_data_abstract, manual_citation,
			notes_for_staff, admin_notes, content_license, code_license,
			compendium_type, primary_research_field, secondary_research_field,
			article_file, code_archive_file, code_doi, data_archive_file, data_doi,
			lecture_notes_archive_file, homework_archive_file, solution_archive_file,
			book_file, verification_archive_file, image_archive_file, legacy_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29,
			$30, $31, $32, $33, $34, $35, $36, $37, $38)
		RETURNING id, created_at, updated_at
	`
	var legacyID sql.NullInt64
	if article.LegacyID != nil {
		legacyID = sql.NullInt64{Int64: *article.LegacyID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		article.SiteOwner, article.Status, article.Title, article.AuthorsText,
		jsonOrEmpty(article.Authorship), article.DOI, article.Journal,
		article.ArticleURL, jsonOrEmpty(article.RelatedURLs),
		article.Month, article.Year, article.Volume, article.Number, article.Pages,
		jsonOrEmpty(article.BibJSON),
		article.PaperAbstract, article.DescriptionHeader, article.CodeDataAbstract,
		article.ManualCitation, article.NotesForStaff, article.AdminNotes,
		article.ContentLicense, article.CodeLicense, article.CompendiumType,
		article.PrimaryResearchField, article.SecondaryResearchField,
		article.ArticleFile, article.CodeArchiveFile, article.CodeDOI,
		article.DataArchiveFile, article.DataDOI,
		article.LectureNotesArchiveFile, article.HomeworkArchiveFile,
		article.SolutionArchiveFile, article.BookFile,
		article.VerificationArchiveFile, article.ImageArchiveFile, legacyID,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Update writes the article's core fields. Tags and contributors are managed
// through their own operations; created_at is never touched.
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles SET
			site_owner = $2, status = $3, title = $4, authors_text = $5,
			authorship = $6, doi = $7, journal = $8, article_url = $9,
			related_urls = $10, month = $11, year = $12, volume = $13,
			number = $14, pages = $15, bibjson = $16, paper_abstract = $17,
			description_header = $18, code_data_abstract = $19,
			manual_citation = $20, notes_for_staff = $21, admin_notes = $22,
			content_license = $23, code_license = $24, compendium_type = $25,
			primary_research_field = $26, secondary_research_field = $27,
			article_file = $28, code_archive_file = $29, code_doi = $30,
			data_archive_file = $31, data_doi = $32,
			lecture_notes_archive_file = $33, homework_archive_file = $34,
			solution_archive_file = $35, book_file = $36,
			verification_archive_file = $37, image_archive_file = $38,
			legacy_id = $39, updated_at = $40
		WHERE id = $1
	`
	var legacyID sql.NullInt64
	if article.LegacyID != nil {
		legacyID = sql.NullInt64{Int64: *article.LegacyID, Valid: true}
	}
	now := time.Now()

	result, err := r.db.ExecContext(ctx, query,
		article.ID,
		article.SiteOwner, article.Status, article.Title, article.AuthorsText,
		jsonOrEmpty(article.Authorship), article.DOI, article.Journal,
		article.ArticleURL, jsonOrEmpty(article.RelatedURLs),
		article.Month, article.Year, article.Volume, article.Number, article.Pages,
		jsonOrEmpty(article.BibJSON),
		article.PaperAbstract, article.DescriptionHeader, article.CodeDataAbstract,
		article.ManualCitation, article.NotesForStaff, article.AdminNotes,
		article.ContentLicense, article.CodeLicense, article.CompendiumType,
		article.PrimaryResearchField, article.SecondaryResearchField,
		article.ArticleFile, article.CodeArchiveFile, article.CodeDOI,
		article.DataArchiveFile, article.DataDOI,
		article.LectureNotesArchiveFile, article.HomeworkArchiveFile,
		article.SolutionArchiveFile, article.BookFile,
		article.VerificationArchiveFile, article.ImageArchiveFile, legacyID,
		now,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	article.UpdatedAt = now
	return nil
}

// scanArticle reads one article row from a row scanner
func scanArticle(scan func(dest ...interface{}) error) (*models.Article, error) {
	var article models.Article
	var authorship, relatedURLs, bibjson []byte
	var legacyID sql.NullInt64

	err := scan(
		&article.ID, &article.SiteOwner, &article.Status, &article.Title,
		&article.AuthorsText, &authorship, &article.DOI, &article.Journal,
		&article.ArticleURL, &relatedURLs, &article.Month, &article.Year,
		&article.Volume, &article.Number, &article.Pages, &bibjson,
		&article.PaperAbstract, &article.DescriptionHeader,
		&article.CodeDataAbstract, &article.ManualCitation,
		&article.NotesForStaff, &article.AdminNotes,
		&article.ContentLicense, &article.CodeLicense, &article.CompendiumType,
		&article.PrimaryResearchField, &article.SecondaryResearchField,
		&article.ArticleFile, &article.CodeArchiveFile, &article.CodeDOI,
		&article.DataArchiveFile, &article.DataDOI,
		&article.LectureNotesArchiveFile, &article.HomeworkArchiveFile,
		&article.SolutionArchiveFile, &article.BookFile,
		&article.VerificationArchiveFile, &article.ImageArchiveFile, &legacyID,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.Authorship = authorship
	article.RelatedURLs = relatedURLs
	article.BibJSON = bibjson
	if legacyID.Valid {
		article.LegacyID = &legacyID.Int64
	}
	return &article, nil
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	article, err := scanArticle(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// List retrieves all articles ordered alphabetically by title
func (r *articleRepo) List(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY title`
	return r.queryArticles(ctx, query)
}

// ListByCompendiumTypes retrieves articles whose compendium type is in the
// given set, ordered by title
func (r *articleRepo) ListByCompendiumTypes(ctx context.Context, types []string) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE compendium_type = ANY($1) ORDER BY title`
	return r.queryArticles(ctx, query, pq.Array(types))
}

func (r *articleRepo) queryArticles(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Delete removes an article. Contributors, verifications and tag associations
// cascade at the database level.
func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// ensureTag upserts a tag name into the vocabulary and returns its id
func ensureTag(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	return id, err
}

// SetTags replaces the deprecated free tag set of an article
func (r *articleRepo) SetTags(ctx context.Context, articleID int64, tags []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM article_free_tags WHERE article_id = $1", articleID); err != nil {
		return err
	}

	for _, name := range tags {
		tagID, err := ensureTag(ctx, tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO article_free_tags (article_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			articleID, tagID,
		); err != nil {
			if isForeignKeyViolation(err) {
				return ErrMissingParent
			}
			return err
		}
	}

	return tx.Commit()
}

// SetArticleTags replaces an article's typed tag associations using
// PostgreSQL COPY for the association rows
func (r *articleRepo) SetArticleTags(ctx context.Context, articleID int64, tags []models.ArticleTag) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM article_tags WHERE article_id = $1", articleID); err != nil {
		return err
	}

	seen := make(map[int64]bool)
	type assoc struct {
		tagID   int64
		tagType models.TagType
	}
	var assocs []assoc
	for _, tag := range tags {
		tagID, err := ensureTag(ctx, tx, tag.Name)
		if err != nil {
			return err
		}
		if seen[tagID] {
			continue
		}
		seen[tagID] = true
		tagType := tag.TagType
		if tagType == "" {
			tagType = models.TagTypeFolksonomic
		}
		assocs = append(assocs, assoc{tagID: tagID, tagType: tagType})
	}

	if len(assocs) > 0 {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("article_tags", "article_id", "tag_id", "tag_type"))
		if err != nil {
			return err
		}
		for _, a := range assocs {
			if _, err := stmt.ExecContext(ctx, articleID, a.tagID, string(a.tagType)); err != nil {
				stmt.Close()
				return err
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			stmt.Close()
			if isForeignKeyViolation(err) {
				return ErrMissingParent
			}
			return err
		}
		if err := stmt.Close(); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetTags retrieves both tag sets of an article
func (r *articleRepo) GetTags(ctx context.Context, articleID int64) ([]string, []models.ArticleTag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN article_free_tags aft ON aft.tag_id = t.id
		WHERE aft.article_id = $1 ORDER BY t.name
	`, articleID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var free []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, nil, err
		}
		free = append(free, name)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	typedRows, err := r.db.QueryContext(ctx, `
		SELECT t.name, at.tag_type FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = $1 ORDER BY t.name
	`, articleID)
	if err != nil {
		return nil, nil, err
	}
	defer typedRows.Close()

	var typed []models.ArticleTag
	for typedRows.Next() {
		var tag models.ArticleTag
		if err := typedRows.Scan(&tag.Name, &tag.TagType); err != nil {
			return nil, nil, err
		}
		typed = append(typed, tag)
	}
	return free, typed, typedRows.Err()
}

// StreamAll streams all articles for export, ordered by title
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return err
		}
		if err := callback(article); err != nil {
			return err
		}
	}
	return rows.Err()
}
