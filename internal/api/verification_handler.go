package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/config"
	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/service"
)

// VerificationHandler handles verification endpoints
type VerificationHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *VerificationHandler {
	return &VerificationHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "verification").Logger(),
	}
}

// Create handles POST /v1/compendia/:id/verifications. Called when an
// external verification run completes.
func (h *VerificationHandler) Create(c *gin.Context) {
	articleID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var verification models.Verification
	if err := c.ShouldBindJSON(&verification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	verification.ArticleID = articleID

	if err := h.services.Verification.Create(c.Request.Context(), &verification); err != nil {
		h.log.Error().Err(err).Int64("article_id", articleID).Msg("Failed to create verification")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, verification)
}

// ListForArticle handles GET /v1/compendia/:id/verifications, newest first
func (h *VerificationHandler) ListForArticle(c *gin.Context) {
	articleID, ok := parseID(c, "id")
	if !ok {
		return
	}

	verifications, err := h.services.Verification.ListForArticle(c.Request.Context(), articleID)
	if err != nil {
		h.log.Error().Err(err).Int64("article_id", articleID).Msg("Failed to list verifications")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verifications": verifications, "count": len(verifications)})
}

// GetBySlug handles GET /v1/compendia/:id/verifications/:slug
func (h *VerificationHandler) GetBySlug(c *gin.Context) {
	articleID, ok := parseID(c, "id")
	if !ok {
		return
	}
	slug := c.Param("slug")

	verification, err := h.services.Verification.GetBySlug(c.Request.Context(), articleID, slug)
	if err != nil {
		h.log.Error().Err(err).Int64("article_id", articleID).Str("slug", slug).Msg("Failed to get verification")
		respondError(c, err)
		return
	}
	if verification == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "verification not found"})
		return
	}
	c.JSON(http.StatusOK, verification)
}

// Get handles GET /v1/verifications/:id
func (h *VerificationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	verification, err := h.services.Verification.Get(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("verification_id", id).Msg("Failed to get verification")
		respondError(c, err)
		return
	}
	if verification == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "verification not found"})
		return
	}
	c.JSON(http.StatusOK, verification)
}

// Update handles PUT /v1/verifications/:id. The slug and article reference
// are immutable; only run results change.
func (h *VerificationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	existing, err := h.services.Verification.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "verification not found"})
		return
	}

	var verification models.Verification
	if err := c.ShouldBindJSON(&verification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	verification.ID = id
	verification.ArticleID = existing.ArticleID
	verification.Slug = existing.Slug

	if err := h.services.Verification.Update(c.Request.Context(), &verification); err != nil {
		h.log.Error().Err(err).Int64("verification_id", id).Msg("Failed to update verification")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verification)
}

// UploadArchive handles POST /v1/verifications/:id/archive
func (h *VerificationHandler) UploadArchive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
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

	key, err := h.services.Verification.AttachArchive(c.Request.Context(), id, header.Filename, file, header.Size)
	if err != nil {
		h.log.Error().Err(err).Int64("verification_id", id).Msg("Failed to attach archive")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}
