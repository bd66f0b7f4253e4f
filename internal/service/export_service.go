package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/repository"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamCompendia streams all articles in the specified format, ordered by
// title like any other listing
func (s *exportService) StreamCompendia(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting compendia export")

	switch format {
	case "ndjson":
		return s.streamNDJSON(ctx, w)
	case "json":
		return s.streamJSON(ctx, w)
	case "csv":
		return s.streamCSV(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=compendia.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("count", count).Msg("Compendia export completed")
	return nil
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=compendia.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})
	if err != nil {
		return err
	}

	w.Write([]byte("]"))
	return nil
}

// streamCSV exports the citation-relevant columns only; documents and file
// keys do not flatten usefully into CSV
func (s *exportService) streamCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=compendia.csv")

	writer := csv.NewWriter(w)
	header := []string{
		"id", "title", "authors_text", "doi", "journal", "year", "month",
		"volume", "number", "pages", "status", "compendium_type",
		"primary_research_field", "content_license", "code_license", "created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	count := 0
	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		record := []string{
			strconv.FormatInt(article.ID, 10),
			article.Title,
			article.AuthorsText,
			article.DOI,
			article.Journal,
			article.Year,
			article.Month,
			article.Volume,
			article.Number,
			article.Pages,
			string(article.Status),
			article.CompendiumType,
			article.PrimaryResearchField,
			article.ContentLicense,
			article.CodeLicense,
			article.CreatedAt.Format(time.RFC3339),
		}
		count++
		if count%100 == 0 {
			writer.Flush()
		}
		return writer.Write(record)
	})
	if err != nil {
		return err
	}

	writer.Flush()
	s.log.Info().Int("count", count).Msg("Compendia CSV export completed")
	return writer.Error()
}

// GetCount returns the number of rows for a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "compendia":
		return s.repos.Article.Count(ctx)
	case "verifications":
		return s.repos.Verification.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
