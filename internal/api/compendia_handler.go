package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/config"
	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/service"
)

// CompendiaHandler handles article endpoints
type CompendiaHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewCompendiaHandler creates a new CompendiaHandler
func NewCompendiaHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *CompendiaHandler {
	return &CompendiaHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "compendia").Logger(),
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": param + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

// Create handles POST /v1/compendia
func (h *CompendiaHandler) Create(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.Compendia.Create(c.Request.Context(), &article); err != nil {
		h.log.Error().Err(err).Msg("Failed to create article")
		respondError(c, err)
		return
	}

	c.Header("Location", article.CanonicalPath())
	c.JSON(http.StatusCreated, article)
}

// List handles GET /v1/compendia
func (h *CompendiaHandler) List(c *gin.Context) {
	articles, err := h.services.Compendia.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list articles")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"compendia": articles, "count": len(articles)})
}

// Get handles GET /v1/compendia/:id
func (h *CompendiaHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	article, err := h.services.Compendia.Get(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to get article")
		respondError(c, err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// GetByCanonicalPath handles GET /compendia/:year/:id. The year segment is
// accepted but not used for lookup.
func (h *CompendiaHandler) GetByCanonicalPath(c *gin.Context) {
	if _, err := strconv.Atoi(c.Param("year")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be numeric"})
		return
	}
	h.Get(c)
}

// Update handles PUT /v1/compendia/:id. Core fields only; contributors have
// their own endpoint.
func (h *CompendiaHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	article.ID = id

	if err := h.services.Compendia.Update(c.Request.Context(), &article); err != nil {
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to update article")
		respondError(c, err)
		return
	}

	// The bound struct lacks the stored created_at; return the persisted row
	updated, err := h.services.Compendia.Get(c.Request.Context(), id)
	if err != nil || updated == nil {
		c.JSON(http.StatusOK, article)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/compendia/:id
func (h *CompendiaHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Compendia.Delete(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to delete article")
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListContributors handles GET /v1/compendia/:id/contributors
func (h *CompendiaHandler) ListContributors(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	contributors, err := h.services.Compendia.ListContributors(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to list contributors")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contributors": contributors, "count": len(contributors)})
}

// ReplaceContributors handles PUT /v1/compendia/:id/contributors. This is
// the explicit second step of the article save contract.
func (h *CompendiaHandler) ReplaceContributors(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Contributors []*models.Contributor `json:"contributors"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.Compendia.ReplaceContributors(c.Request.Context(), id, req.Contributors); err != nil {
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to replace contributors")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contributors": req.Contributors, "count": len(req.Contributors)})
}

// AddContributor handles POST /v1/compendia/:id/contributors
func (h *CompendiaHandler) AddContributor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var contributor models.Contributor
	if err := c.ShouldBindJSON(&contributor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	contributor.ArticleID = id

	if err := h.services.Compendia.AddContributor(c.Request.Context(), &contributor); err != nil {
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to add contributor")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contributor)
}

// GetContributor handles GET /v1/contributors/:id
func (h *CompendiaHandler) GetContributor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	contributor, err := h.services.Compendia.GetContributor(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("contributor_id", id).Msg("Failed to get contributor")
		respondError(c, err)
		return
	}
	if contributor == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contributor not found"})
		return
	}
	c.JSON(http.StatusOK, contributor)
}

// RemoveContributor handles DELETE /v1/contributors/:id
func (h *CompendiaHandler) RemoveContributor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Compendia.RemoveContributor(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Int64("contributor_id", id).Msg("Failed to remove contributor")
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadFile handles POST /v1/compendia/:id/files/:slot
func (h *CompendiaHandler) UploadFile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	slot := models.FileSlot(c.Param("slot"))
	if models.UploadCategory(slot) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown file slot"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Storage.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Storage.MaxUploadSize/(1024*1024)),
		})
		return
	}

	key, err := h.services.Compendia.AttachFile(c.Request.Context(), id, slot, header.Filename, file, header.Size)
	if err != nil {
		h.log.Error().Err(err).Int64("article_id", id).Str("slot", string(slot)).Msg("Failed to attach file")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key, "slot": slot})
}
