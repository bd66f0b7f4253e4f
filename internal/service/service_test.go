package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codersquid/researchcompendia/internal/config"
	"github.com/codersquid/researchcompendia/internal/mocks"
	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/repository"
	"github.com/codersquid/researchcompendia/internal/service"
)

type fixture struct {
	services      *service.Services
	articles      *mocks.MockArticleRepository
	contributors  *mocks.MockContributorRepository
	verifications *mocks.MockVerificationRepository
	toc           *mocks.MockTOCRepository
	store         *mocks.MockStorage
}

func newFixture() *fixture {
	repos, articles, contributors, verifications, toc := mocks.NewMockRepositories()
	store := mocks.NewMockStorage()
	services := service.NewServices(repos, store, &config.Config{}, zerolog.Nop())
	return &fixture{
		services:      services,
		articles:      articles,
		contributors:  contributors,
		verifications: verifications,
		toc:           toc,
		store:         store,
	}
}

func newArticle(title string) *models.Article {
	return &models.Article{
		SiteOwner:   "user-1",
		Title:       title,
		AuthorsText: "A. Author",
	}
}

func TestCompendiaCreateDefaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Reproducible Fluid Dynamics")
	err := f.services.Compendia.Create(ctx, article)
	require.NoError(t, err)

	assert.NotZero(t, article.ID)
	assert.Equal(t, models.StatusDraft, article.Status)
	assert.Equal(t, "Code and Data Abstract", article.DescriptionHeader)
}

func TestCompendiaCreateValidationFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("")
	err := f.services.Compendia.Create(ctx, article)

	var vErr *service.ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Errors, 1)
	assert.Equal(t, "title", vErr.Errors[0].Field)
	assert.Empty(t, f.articles.Articles, "nothing should be persisted on validation failure")
}

func TestCompendiaCreateSavesTagSets(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Tagged Compendium")
	article.Tags = []string{"legacy", "imported"}
	article.ArticleTags = []models.ArticleTag{
		{Name: "python", TagType: models.TagTypeFolksonomic},
		{Name: "cfd", TagType: models.TagTypeCurated},
	}

	require.NoError(t, f.services.Compendia.Create(ctx, article))

	got, err := f.services.Compendia.Get(ctx, article.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"legacy", "imported"}, got.Tags)
	assert.Len(t, got.ArticleTags, 2)
}

func TestCompendiaGetMissingReturnsNil(t *testing.T) {
	f := newFixture()

	got, err := f.services.Compendia.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompendiaListOrderedByTitle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, title := range []string{"Zebra Migration Models", "Aerosol Transport", "Monte Carlo Methods"} {
		require.NoError(t, f.services.Compendia.Create(ctx, newArticle(title)))
	}

	articles, err := f.services.Compendia.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, "Aerosol Transport", articles[0].Title)
	assert.Equal(t, "Monte Carlo Methods", articles[1].Title)
	assert.Equal(t, "Zebra Migration Models", articles[2].Title)
}

func TestReplaceContributorsTwoStep(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Collaborative Work")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	second := 2
	first := 1
	contributors := []*models.Contributor{
		{UserID: "user-b", Role: models.RoleEditor, CitationOrder: &second},
		{UserID: "user-a", Role: models.RoleAuthor, CitationOrder: &first},
		{UserID: "user-c", Role: models.RoleReviewer},
	}
	require.NoError(t, f.services.Compendia.ReplaceContributors(ctx, article.ID, contributors))

	got, err := f.services.Compendia.ListContributors(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// ordered by citation_order, entries without one last
	assert.Equal(t, "user-a", got[0].UserID)
	assert.Equal(t, "user-b", got[1].UserID)
	assert.Equal(t, "user-c", got[2].UserID)

	// replacing again swaps the full set
	require.NoError(t, f.services.Compendia.ReplaceContributors(ctx, article.ID, []*models.Contributor{
		{UserID: "user-d", Role: models.RoleCurator},
	}))
	got, err = f.services.Compendia.ListContributors(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "user-d", got[0].UserID)
}

func TestReplaceContributorsMissingArticle(t *testing.T) {
	f := newFixture()

	err := f.services.Compendia.ReplaceContributors(context.Background(), 42, []*models.Contributor{
		{UserID: "user-a"},
	})
	assert.ErrorIs(t, err, repository.ErrMissingParent)
}

func TestReplaceContributorsInvalidRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Strict Roles")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	err := f.services.Compendia.ReplaceContributors(ctx, article.ID, []*models.Contributor{
		{UserID: "user-a", Role: "benefactor"},
	})

	var vErr *service.ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "role", vErr.Errors[0].Field)
}

func TestAddContributor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Growing Team")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	contributor := &models.Contributor{UserID: "user-a", ArticleID: article.ID, Role: models.RoleAuthor}
	require.NoError(t, f.services.Compendia.AddContributor(ctx, contributor))
	assert.NotZero(t, contributor.ID)

	got, err := f.services.Compendia.GetContributor(ctx, contributor.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-a", got.UserID)

	// adding does not disturb the existing set
	require.NoError(t, f.services.Compendia.AddContributor(ctx, &models.Contributor{
		UserID: "user-b", ArticleID: article.ID, Role: models.RoleEditor,
	}))
	all, err := f.services.Compendia.ListContributors(ctx, article.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddContributorMissingArticle(t *testing.T) {
	f := newFixture()

	err := f.services.Compendia.AddContributor(context.Background(), &models.Contributor{
		UserID: "user-a", ArticleID: 404,
	})
	assert.ErrorIs(t, err, repository.ErrMissingParent)
}

func TestRemoveContributor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Shrinking Team")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	contributor := &models.Contributor{UserID: "user-a", ArticleID: article.ID}
	require.NoError(t, f.services.Compendia.AddContributor(ctx, contributor))
	require.NoError(t, f.services.Compendia.RemoveContributor(ctx, contributor.ID))

	got, err := f.services.Compendia.GetContributor(ctx, contributor.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAttachFileStoresUnderCategory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("With Attachments")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	content := strings.NewReader("pdf bytes")
	key, err := f.services.Compendia.AttachFile(ctx, article.ID, models.SlotArticle, "paper.pdf", content, int64(content.Len()))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "articles/"), "article slot stores under articles/, got %q", key)
	assert.Contains(t, f.store.Objects, key)

	got, err := f.services.Compendia.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, key, got.ArticleFile)
}

func TestAttachFileCodeArchiveUsesMaterials(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("With Code")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	content := strings.NewReader("tarball")
	key, err := f.services.Compendia.AttachFile(ctx, article.ID, models.SlotCodeArchive, "code.tar.gz", content, int64(content.Len()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "materials/"))
}

func TestAttachFileUnknownSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Bad Slot")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	_, err := f.services.Compendia.AttachFile(ctx, article.ID, "poster_file", "poster.png", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Empty(t, f.store.Objects)
}

func TestAttachFileMissingArticle(t *testing.T) {
	f := newFixture()

	_, err := f.services.Compendia.AttachFile(context.Background(), 99, models.SlotArticle, "paper.pdf", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, repository.ErrMissingParent)
}

func TestAttachFileStorageFailureLeavesArticleUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Flaky Storage")
	require.NoError(t, f.services.Compendia.Create(ctx, article))
	f.store.SaveError = errors.New("disk full")

	_, err := f.services.Compendia.AttachFile(ctx, article.ID, models.SlotArticle, "paper.pdf", strings.NewReader("x"), 1)
	require.Error(t, err)

	got, err := f.services.Compendia.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ArticleFile)
}

func TestVerificationCreateDefaultsAndSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.verifications.Now = func() time.Time {
		return time.Date(2014, time.March, 15, 10, 0, 0, 0, time.UTC)
	}

	article := newArticle("Verified Work")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	verification := &models.Verification{ArticleID: article.ID}
	require.NoError(t, f.services.Verification.Create(ctx, verification))

	assert.Equal(t, models.VerificationPending, verification.Status)
	assert.NotEmpty(t, verification.RequestID, "a request id is assigned when none was supplied")
	assert.Equal(t, "2014.03.1", verification.Slug)
}

func TestVerificationCreateMissingArticle(t *testing.T) {
	f := newFixture()

	err := f.services.Verification.Create(context.Background(), &models.Verification{ArticleID: 404})
	assert.ErrorIs(t, err, repository.ErrMissingParent)
}

func TestVerificationCreateInvalidStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Verified Work")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	err := f.services.Verification.Create(ctx, &models.Verification{ArticleID: article.ID, Status: "exploded"})
	var vErr *service.ValidationFailedError
	require.ErrorAs(t, err, &vErr)
}

func TestVerificationListNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Much Verified Work")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	base := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * 24 * time.Hour
		f.verifications.Now = func() time.Time { return base.Add(offset) }
		require.NoError(t, f.services.Verification.Create(ctx, &models.Verification{ArticleID: article.ID}))
	}

	verifications, err := f.services.Verification.ListForArticle(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, verifications, 3)
	assert.True(t, verifications[0].CreatedAt.After(verifications[1].CreatedAt))
	assert.True(t, verifications[1].CreatedAt.After(verifications[2].CreatedAt))
}

func TestVerificationGetBySlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.verifications.Now = func() time.Time {
		return time.Date(2014, time.March, 15, 10, 0, 0, 0, time.UTC)
	}

	article := newArticle("Verified Work")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	verification := &models.Verification{ArticleID: article.ID}
	require.NoError(t, f.services.Verification.Create(ctx, verification))

	got, err := f.services.Verification.GetBySlug(ctx, article.ID, "2014.03.1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, verification.ID, got.ID)

	// slugs are scoped to the article
	missing, err := f.services.Verification.GetBySlug(ctx, article.ID+1, "2014.03.1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVerificationAttachArchive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Verified Work")
	require.NoError(t, f.services.Compendia.Create(ctx, article))

	verification := &models.Verification{ArticleID: article.ID}
	require.NoError(t, f.services.Verification.Create(ctx, verification))

	content := strings.NewReader("results tarball")
	key, err := f.services.Verification.AttachArchive(ctx, verification.ID, "results.tar.gz", content, int64(content.Len()))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "results/"))
	assert.Contains(t, f.store.Objects, key)

	got, err := f.services.Verification.Get(ctx, verification.ID)
	require.NoError(t, err)
	assert.Equal(t, key, got.ArchiveFile)
}

func TestTOCCreateEntryDerivesSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := &models.TableOfContentsEntry{EntryText: "Computational Science!", EntryOrder: 1}
	require.NoError(t, f.services.TOC.CreateEntry(ctx, entry))
	assert.Equal(t, "computational-science", entry.Slug)
}

func TestTOCCreateEntryDuplicateOrderAndSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.services.TOC.CreateEntry(ctx, &models.TableOfContentsEntry{
		EntryText: "Physics", EntryOrder: 1, Slug: "physics",
	}))

	err := f.services.TOC.CreateEntry(ctx, &models.TableOfContentsEntry{
		EntryText: "Physics Again", EntryOrder: 1, Slug: "physics",
	})

	var vErr *service.ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Errors, 2)
	fields := []string{vErr.Errors[0].Field, vErr.Errors[1].Field}
	assert.Contains(t, fields, "entry_order")
	assert.Contains(t, fields, "slug")
}

func TestTOCUpdateEntryKeepsOwnOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := &models.TableOfContentsEntry{EntryText: "Physics", EntryOrder: 1, Slug: "physics"}
	require.NoError(t, f.services.TOC.CreateEntry(ctx, entry))

	// saving without changing order or slug must not trip the uniqueness check
	entry.Description = "updated"
	require.NoError(t, f.services.TOC.UpdateEntry(ctx, entry))

	// but moving onto another entry's order must
	other := &models.TableOfContentsEntry{EntryText: "Biology", EntryOrder: 2, Slug: "biology"}
	require.NoError(t, f.services.TOC.CreateEntry(ctx, other))
	other.EntryOrder = 1

	var vErr *service.ValidationFailedError
	require.ErrorAs(t, f.services.TOC.UpdateEntry(ctx, other), &vErr)
}

func TestTOCCreateEntryTypeDefaultsToMisc(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := &models.TableOfContentsEntry{EntryText: "Everything Else", EntryOrder: 9, Slug: "misc"}
	require.NoError(t, f.services.TOC.CreateEntry(ctx, entry))

	entryType := &models.EntryType{TableOfContentsEntryID: entry.ID}
	require.NoError(t, f.services.TOC.CreateEntryType(ctx, entryType))
	assert.Equal(t, models.DefaultCompendiumType, entryType.CompendiumType)
}

func TestTOCCreateEntryTypeDuplicateType(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := &models.TableOfContentsEntry{EntryText: "Software", EntryOrder: 1, Slug: "software"}
	require.NoError(t, f.services.TOC.CreateEntry(ctx, entry))

	require.NoError(t, f.services.TOC.CreateEntryType(ctx, &models.EntryType{
		CompendiumType: "software", TableOfContentsEntryID: entry.ID,
	}))
	err := f.services.TOC.CreateEntryType(ctx, &models.EntryType{
		CompendiumType: "software", TableOfContentsEntryID: entry.ID,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestTOCSections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	software := &models.TableOfContentsEntry{EntryText: "Software", EntryOrder: 2, Slug: "software"}
	papers := &models.TableOfContentsEntry{EntryText: "Papers", EntryOrder: 1, Slug: "papers"}
	require.NoError(t, f.services.TOC.CreateEntry(ctx, software))
	require.NoError(t, f.services.TOC.CreateEntry(ctx, papers))

	require.NoError(t, f.services.TOC.CreateEntryType(ctx, &models.EntryType{CompendiumType: "software", TableOfContentsEntryID: software.ID}))
	require.NoError(t, f.services.TOC.CreateEntryType(ctx, &models.EntryType{CompendiumType: "article", TableOfContentsEntryID: papers.ID}))
	require.NoError(t, f.services.TOC.CreateEntryType(ctx, &models.EntryType{CompendiumType: "thesis", TableOfContentsEntryID: papers.ID}))

	tool := newArticle("A Simulation Tool")
	tool.CompendiumType = "software"
	paper := newArticle("A Paper")
	paper.CompendiumType = "article"
	thesis := newArticle("A Thesis")
	thesis.CompendiumType = "thesis"
	for _, article := range []*models.Article{tool, paper, thesis} {
		require.NoError(t, f.services.Compendia.Create(ctx, article))
	}

	sections, err := f.services.TOC.Sections(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	// entries come back in display order
	assert.Equal(t, "papers", sections[0].Entry.Slug)
	assert.Equal(t, "software", sections[1].Entry.Slug)

	require.Len(t, sections[0].Articles, 2)
	assert.Equal(t, "A Paper", sections[0].Articles[0].Title)
	assert.Equal(t, "A Thesis", sections[0].Articles[1].Title)
	require.Len(t, sections[1].Articles, 1)
	assert.Equal(t, "A Simulation Tool", sections[1].Articles[0].Title)
}

func TestTOCGetEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := &models.TableOfContentsEntry{EntryText: "Physics", EntryOrder: 1, Slug: "physics"}
	require.NoError(t, f.services.TOC.CreateEntry(ctx, entry))

	got, err := f.services.TOC.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "physics", got.Slug)

	missing, err := f.services.TOC.GetEntry(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTOCSectionBySlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry := &models.TableOfContentsEntry{EntryText: "Software", EntryOrder: 1, Slug: "software"}
	require.NoError(t, f.services.TOC.CreateEntry(ctx, entry))
	require.NoError(t, f.services.TOC.CreateEntryType(ctx, &models.EntryType{
		CompendiumType: "software", TableOfContentsEntryID: entry.ID,
	}))

	tool := newArticle("A Simulation Tool")
	tool.CompendiumType = "software"
	require.NoError(t, f.services.Compendia.Create(ctx, tool))

	section, err := f.services.TOC.SectionBySlug(ctx, "software")
	require.NoError(t, err)
	require.NotNil(t, section)
	assert.Equal(t, entry.ID, section.Entry.ID)
	require.Len(t, section.Articles, 1)
	assert.Equal(t, "A Simulation Tool", section.Articles[0].Title)

	missing, err := f.services.TOC.SectionBySlug(ctx, "no-such-section")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTOCOptions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	option := &models.TableOfContentsOption{CompendiumType: "software", Description: "Software compendia"}
	require.NoError(t, f.services.TOC.CreateOption(ctx, option))
	assert.NotZero(t, option.ID)

	err := f.services.TOC.CreateOption(ctx, &models.TableOfContentsOption{CompendiumType: "software"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	var vErr *service.ValidationFailedError
	require.ErrorAs(t, f.services.TOC.CreateOption(ctx, &models.TableOfContentsOption{CompendiumType: "magazine"}), &vErr)
	assert.Equal(t, "compendium_type", vErr.Errors[0].Field)

	require.NoError(t, f.services.TOC.CreateOption(ctx, &models.TableOfContentsOption{CompendiumType: "article"}))
	options, err := f.services.TOC.ListOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "article", options[0].CompendiumType)
	assert.Equal(t, "software", options[1].CompendiumType)
}

func TestExportStreamNDJSON(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.services.Compendia.Create(ctx, newArticle("First")))
	require.NoError(t, f.services.Compendia.Create(ctx, newArticle("Second")))

	w := httptest.NewRecorder()
	require.NoError(t, f.services.Export.StreamCompendia(ctx, w, "ndjson"))

	assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"title":"First"`)
}

func TestExportStreamCSVHeader(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.services.Compendia.Create(ctx, newArticle("Only One")))

	w := httptest.NewRecorder()
	require.NoError(t, f.services.Export.StreamCompendia(ctx, w, "csv"))

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,title,authors_text"))
	assert.Contains(t, lines[1], "Only One")
}

func TestExportStreamNDJSONFailure(t *testing.T) {
	repos, articles, _, _, _ := mocks.NewMockRepositories()
	store := mocks.NewMockStorage()
	var logBuf bytes.Buffer
	services := service.NewServices(repos, store, &config.Config{}, zerolog.New(&logBuf))

	articles.StreamError = errors.New("connection reset")

	w := httptest.NewRecorder()
	err := services.Export.StreamCompendia(context.Background(), w, "ndjson")
	require.Error(t, err)
	assert.NotContains(t, logBuf.String(), "export completed")
}

func TestExportUnsupportedFormat(t *testing.T) {
	f := newFixture()

	w := httptest.NewRecorder()
	err := f.services.Export.StreamCompendia(context.Background(), w, "xml")
	assert.Error(t, err)
}

func TestExportGetCount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article := newArticle("Counted")
	require.NoError(t, f.services.Compendia.Create(ctx, article))
	require.NoError(t, f.services.Verification.Create(ctx, &models.Verification{ArticleID: article.ID}))

	compendia, err := f.services.Export.GetCount(ctx, "compendia")
	require.NoError(t, err)
	assert.Equal(t, 1, compendia)

	verifications, err := f.services.Export.GetCount(ctx, "verifications")
	require.NoError(t, err)
	assert.Equal(t, 1, verifications)

	_, err = f.services.Export.GetCount(ctx, "widgets")
	assert.Error(t, err)
}
