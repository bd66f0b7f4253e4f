package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles    map[int64]*models.Article
	FreeTags    map[int64][]string
	TypedTags   map[int64][]models.ArticleTag
	InsertError error
	StreamError error
	nextID      int64
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles:  make(map[int64]*models.Article),
		FreeTags:  make(map[int64][]string),
		TypedTags: make(map[int64][]models.ArticleTag),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	article.ID = m.nextID
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	article.UpdatedAt = article.CreatedAt
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	existing, ok := m.Articles[article.ID]
	if !ok {
		return repository.ErrMissingParent
	}
	article.CreatedAt = existing.CreatedAt
	article.UpdatedAt = time.Now()
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return m.Articles[id], nil
}

func (m *MockArticleRepository) List(ctx context.Context) ([]*models.Article, error) {
	return m.sorted(nil), nil
}

func (m *MockArticleRepository) ListByCompendiumTypes(ctx context.Context, types []string) ([]*models.Article, error) {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return m.sorted(func(a *models.Article) bool { return allowed[a.CompendiumType] }), nil
}

// sorted returns articles matching the filter, ordered by title
func (m *MockArticleRepository) sorted(filter func(*models.Article) bool) []*models.Article {
	var articles []*models.Article
	for _, article := range m.Articles {
		if filter == nil || filter(article) {
			articles = append(articles, article)
		}
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].Title < articles[j].Title })
	return articles
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) error {
	delete(m.Articles, id)
	delete(m.FreeTags, id)
	delete(m.TypedTags, id)
	return nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.Articles[id]
	return ok, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

func (m *MockArticleRepository) SetTags(ctx context.Context, articleID int64, tags []string) error {
	if _, ok := m.Articles[articleID]; !ok {
		return repository.ErrMissingParent
	}
	m.FreeTags[articleID] = tags
	return nil
}

func (m *MockArticleRepository) SetArticleTags(ctx context.Context, articleID int64, tags []models.ArticleTag) error {
	if _, ok := m.Articles[articleID]; !ok {
		return repository.ErrMissingParent
	}
	m.TypedTags[articleID] = tags
	return nil
}

func (m *MockArticleRepository) GetTags(ctx context.Context, articleID int64) ([]string, []models.ArticleTag, error) {
	return m.FreeTags[articleID], m.TypedTags[articleID], nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	if m.StreamError != nil {
		return m.StreamError
	}
	for _, article := range m.sorted(nil) {
		if err := callback(article); err != nil {
			return err
		}
	}
	return nil
}

// MockContributorRepository is a mock implementation of ContributorRepository
type MockContributorRepository struct {
	Contributors map[int64]*models.Contributor
	nextID       int64
}

func NewMockContributorRepository() *MockContributorRepository {
	return &MockContributorRepository{Contributors: make(map[int64]*models.Contributor)}
}

func (m *MockContributorRepository) Create(ctx context.Context, contributor *models.Contributor) error {
	m.nextID++
	contributor.ID = m.nextID
	contributor.CreatedAt = time.Now()
	contributor.UpdatedAt = contributor.CreatedAt
	m.Contributors[contributor.ID] = contributor
	return nil
}

func (m *MockContributorRepository) GetByID(ctx context.Context, id int64) (*models.Contributor, error) {
	return m.Contributors[id], nil
}

func (m *MockContributorRepository) ListByArticle(ctx context.Context, articleID int64) ([]*models.Contributor, error) {
	var contributors []*models.Contributor
	for _, contributor := range m.Contributors {
		if contributor.ArticleID == articleID {
			contributors = append(contributors, contributor)
		}
	}
	sort.Slice(contributors, func(i, j int) bool {
		a, b := contributors[i], contributors[j]
		switch {
		case a.CitationOrder == nil && b.CitationOrder == nil:
			return a.UserID < b.UserID
		case a.CitationOrder == nil:
			return false
		case b.CitationOrder == nil:
			return true
		case *a.CitationOrder != *b.CitationOrder:
			return *a.CitationOrder < *b.CitationOrder
		default:
			return a.UserID < b.UserID
		}
	})
	return contributors, nil
}

func (m *MockContributorRepository) Delete(ctx context.Context, id int64) error {
	delete(m.Contributors, id)
	return nil
}

func (m *MockContributorRepository) ReplaceForArticle(ctx context.Context, articleID int64, contributors []*models.Contributor) error {
	for id, contributor := range m.Contributors {
		if contributor.ArticleID == articleID {
			delete(m.Contributors, id)
		}
	}
	for _, contributor := range contributors {
		contributor.ArticleID = articleID
		if err := m.Create(ctx, contributor); err != nil {
			return err
		}
	}
	return nil
}

// MockVerificationRepository is a mock implementation of
// VerificationRepository. Create mirrors the real repository: the slug is
// derived from the assigned id and creation instant, and must be unique
// within the article.
type MockVerificationRepository struct {
	Verifications map[int64]*models.Verification
	InsertError   error
	Now           func() time.Time
	nextID        int64
}

func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{
		Verifications: make(map[int64]*models.Verification),
		Now:           time.Now,
	}
}

func (m *MockVerificationRepository) Create(ctx context.Context, verification *models.Verification) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	verification.ID = m.nextID
	if verification.CreatedAt.IsZero() {
		verification.CreatedAt = m.Now()
	}
	verification.UpdatedAt = verification.CreatedAt
	verification.Slug = verification.PopulateSlug()

	for _, existing := range m.Verifications {
		if existing.ArticleID == verification.ArticleID && existing.Slug == verification.Slug {
			return repository.ErrDuplicate
		}
	}
	m.Verifications[verification.ID] = verification
	return nil
}

func (m *MockVerificationRepository) Update(ctx context.Context, verification *models.Verification) error {
	if _, ok := m.Verifications[verification.ID]; !ok {
		return repository.ErrMissingParent
	}
	verification.UpdatedAt = time.Now()
	m.Verifications[verification.ID] = verification
	return nil
}

func (m *MockVerificationRepository) GetByID(ctx context.Context, id int64) (*models.Verification, error) {
	return m.Verifications[id], nil
}

func (m *MockVerificationRepository) GetBySlug(ctx context.Context, articleID int64, slug string) (*models.Verification, error) {
	for _, verification := range m.Verifications {
		if verification.ArticleID == articleID && verification.Slug == slug {
			return verification, nil
		}
	}
	return nil, nil
}

func (m *MockVerificationRepository) ListByArticle(ctx context.Context, articleID int64) ([]*models.Verification, error) {
	var verifications []*models.Verification
	for _, verification := range m.Verifications {
		if verification.ArticleID == articleID {
			verifications = append(verifications, verification)
		}
	}
	sort.Slice(verifications, func(i, j int) bool {
		return verifications[i].CreatedAt.After(verifications[j].CreatedAt)
	})
	return verifications, nil
}

func (m *MockVerificationRepository) Count(ctx context.Context) (int, error) {
	return len(m.Verifications), nil
}

// MockTOCRepository is a mock implementation of TOCRepository with the same
// uniqueness behavior as the database constraints
type MockTOCRepository struct {
	Entries    map[int64]*models.TableOfContentsEntry
	EntryTypes map[int64]*models.EntryType
	Options    map[int64]*models.TableOfContentsOption
	nextID     int64
}

func NewMockTOCRepository() *MockTOCRepository {
	return &MockTOCRepository{
		Entries:    make(map[int64]*models.TableOfContentsEntry),
		EntryTypes: make(map[int64]*models.EntryType),
		Options:    make(map[int64]*models.TableOfContentsOption),
	}
}

func (m *MockTOCRepository) CreateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error {
	for _, existing := range m.Entries {
		if existing.EntryOrder == entry.EntryOrder || existing.Slug == entry.Slug {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	entry.ID = m.nextID
	m.Entries[entry.ID] = entry
	return nil
}

func (m *MockTOCRepository) UpdateEntry(ctx context.Context, entry *models.TableOfContentsEntry) error {
	if _, ok := m.Entries[entry.ID]; !ok {
		return repository.ErrMissingParent
	}
	for id, existing := range m.Entries {
		if id != entry.ID && (existing.EntryOrder == entry.EntryOrder || existing.Slug == entry.Slug) {
			return repository.ErrDuplicate
		}
	}
	m.Entries[entry.ID] = entry
	return nil
}

func (m *MockTOCRepository) GetEntry(ctx context.Context, id int64) (*models.TableOfContentsEntry, error) {
	return m.Entries[id], nil
}

func (m *MockTOCRepository) GetEntryBySlug(ctx context.Context, slug string) (*models.TableOfContentsEntry, error) {
	for _, entry := range m.Entries {
		if entry.Slug == slug {
			return entry, nil
		}
	}
	return nil, nil
}

func (m *MockTOCRepository) ListEntries(ctx context.Context) ([]*models.TableOfContentsEntry, error) {
	var entries []*models.TableOfContentsEntry
	for _, entry := range m.Entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EntryOrder < entries[j].EntryOrder })
	return entries, nil
}

func (m *MockTOCRepository) DeleteEntry(ctx context.Context, id int64) error {
	delete(m.Entries, id)
	for typeID, entryType := range m.EntryTypes {
		if entryType.TableOfContentsEntryID == id {
			delete(m.EntryTypes, typeID)
		}
	}
	return nil
}

func (m *MockTOCRepository) EntryOrderExists(ctx context.Context, order int, excludeID int64) (bool, error) {
	for id, entry := range m.Entries {
		if id != excludeID && entry.EntryOrder == order {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTOCRepository) EntrySlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for id, entry := range m.Entries {
		if id != excludeID && entry.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTOCRepository) CreateEntryType(ctx context.Context, entryType *models.EntryType) error {
	for _, existing := range m.EntryTypes {
		if existing.CompendiumType == entryType.CompendiumType {
			return repository.ErrDuplicate
		}
	}
	if _, ok := m.Entries[entryType.TableOfContentsEntryID]; !ok {
		return repository.ErrMissingParent
	}
	m.nextID++
	entryType.ID = m.nextID
	m.EntryTypes[entryType.ID] = entryType
	return nil
}

func (m *MockTOCRepository) ListEntryTypes(ctx context.Context) ([]*models.EntryType, error) {
	var entryTypes []*models.EntryType
	for _, entryType := range m.EntryTypes {
		entryTypes = append(entryTypes, entryType)
	}
	sort.Slice(entryTypes, func(i, j int) bool {
		return entryTypes[i].CompendiumType < entryTypes[j].CompendiumType
	})
	return entryTypes, nil
}

func (m *MockTOCRepository) DeleteEntryType(ctx context.Context, id int64) error {
	delete(m.EntryTypes, id)
	return nil
}

func (m *MockTOCRepository) CreateOption(ctx context.Context, option *models.TableOfContentsOption) error {
	for _, existing := range m.Options {
		if existing.CompendiumType == option.CompendiumType {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	option.ID = m.nextID
	m.Options[option.ID] = option
	return nil
}

func (m *MockTOCRepository) ListOptions(ctx context.Context) ([]*models.TableOfContentsOption, error) {
	var options []*models.TableOfContentsOption
	for _, option := range m.Options {
		options = append(options, option)
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].CompendiumType < options[j].CompendiumType
	})
	return options, nil
}

// NewMockRepositories bundles all mocks into a Repositories value
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockContributorRepository, *MockVerificationRepository, *MockTOCRepository) {
	articles := NewMockArticleRepository()
	contributors := NewMockContributorRepository()
	verifications := NewMockVerificationRepository()
	toc := NewMockTOCRepository()
	repos := &repository.Repositories{
		Article:      articles,
		Contributor:  contributors,
		Verification: verifications,
		TOC:          toc,
	}
	return repos, articles, contributors, verifications, toc
}
