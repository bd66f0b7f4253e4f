package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/models"
	"github.com/codersquid/researchcompendia/internal/service"
)

// TOCHandler handles table-of-contents taxonomy endpoints
type TOCHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTOCHandler creates a new TOCHandler
func NewTOCHandler(services *service.Services, log zerolog.Logger) *TOCHandler {
	return &TOCHandler{
		services: services,
		log:      log.With().Str("handler", "toc").Logger(),
	}
}

// Sections handles GET /v1/toc: the full table of contents with articles
// grouped per entry
func (h *TOCHandler) Sections(c *gin.Context) {
	sections, err := h.services.TOC.Sections(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build sections")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// SectionBySlug handles GET /v1/toc/sections/:slug
func (h *TOCHandler) SectionBySlug(c *gin.Context) {
	slug := c.Param("slug")

	section, err := h.services.TOC.SectionBySlug(c.Request.Context(), slug)
	if err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Failed to build section")
		respondError(c, err)
		return
	}
	if section == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		return
	}
	c.JSON(http.StatusOK, section)
}

// ListEntries handles GET /v1/toc/entries
func (h *TOCHandler) ListEntries(c *gin.Context) {
	entries, err := h.services.TOC.ListEntries(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list entries")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// CreateEntry handles POST /v1/toc/entries
func (h *TOCHandler) CreateEntry(c *gin.Context) {
	var entry models.TableOfContentsEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.TOC.CreateEntry(c.Request.Context(), &entry); err != nil {
		h.log.Error().Err(err).Msg("Failed to create entry")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetEntry handles GET /v1/toc/entries/:id
func (h *TOCHandler) GetEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := h.services.TOC.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("entry_id", id).Msg("Failed to get entry")
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateEntry handles PUT /v1/toc/entries/:id
func (h *TOCHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var entry models.TableOfContentsEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry.ID = id

	if err := h.services.TOC.UpdateEntry(c.Request.Context(), &entry); err != nil {
		h.log.Error().Err(err).Int64("entry_id", id).Msg("Failed to update entry")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry handles DELETE /v1/toc/entries/:id
func (h *TOCHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.TOC.DeleteEntry(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Int64("entry_id", id).Msg("Failed to delete entry")
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEntryTypes handles GET /v1/toc/entry-types
func (h *TOCHandler) ListEntryTypes(c *gin.Context) {
	entryTypes, err := h.services.TOC.ListEntryTypes(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list entry types")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_types": entryTypes, "count": len(entryTypes)})
}

// CreateEntryType handles POST /v1/toc/entry-types
func (h *TOCHandler) CreateEntryType(c *gin.Context) {
	var entryType models.EntryType
	if err := c.ShouldBindJSON(&entryType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.TOC.CreateEntryType(c.Request.Context(), &entryType); err != nil {
		h.log.Error().Err(err).Str("compendium_type", entryType.CompendiumType).Msg("Failed to create entry type")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryType)
}

// ListOptions handles GET /v1/toc/options
func (h *TOCHandler) ListOptions(c *gin.Context) {
	options, err := h.services.TOC.ListOptions(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list options")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options, "count": len(options)})
}

// CreateOption handles POST /v1/toc/options. Deprecated rows, still writable
// so the stored data stays maintainable.
func (h *TOCHandler) CreateOption(c *gin.Context) {
	var option models.TableOfContentsOption
	if err := c.ShouldBindJSON(&option); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.TOC.CreateOption(c.Request.Context(), &option); err != nil {
		h.log.Error().Err(err).Str("compendium_type", option.CompendiumType).Msg("Failed to create option")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, option)
}

// DeleteEntryType handles DELETE /v1/toc/entry-types/:id
func (h *TOCHandler) DeleteEntryType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.TOC.DeleteEntryType(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Int64("entry_type_id", id).Msg("Failed to delete entry type")
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
