package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codersquid/researchcompendia/internal/config"
	"github.com/codersquid/researchcompendia/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	compendiaHandler := NewCompendiaHandler(services, cfg, log)
	verificationHandler := NewVerificationHandler(services, cfg, log)
	tocHandler := NewTOCHandler(services, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		compendia := v1.Group("/compendia")
		{
			compendia.POST("", compendiaHandler.Create)
			compendia.GET("", compendiaHandler.List)
			compendia.GET("/:id", compendiaHandler.Get)
			compendia.PUT("/:id", compendiaHandler.Update)
			compendia.DELETE("/:id", compendiaHandler.Delete)
			compendia.GET("/:id/contributors", compendiaHandler.ListContributors)
			compendia.PUT("/:id/contributors", compendiaHandler.ReplaceContributors)
			compendia.POST("/:id/contributors", compendiaHandler.AddContributor)
			compendia.POST("/:id/files/:slot", compendiaHandler.UploadFile)
			compendia.GET("/:id/verifications", verificationHandler.ListForArticle)
			compendia.POST("/:id/verifications", verificationHandler.Create)
			compendia.GET("/:id/verifications/:slug", verificationHandler.GetBySlug)
		}

		contributors := v1.Group("/contributors")
		{
			contributors.GET("/:id", compendiaHandler.GetContributor)
			contributors.DELETE("/:id", compendiaHandler.RemoveContributor)
		}

		verifications := v1.Group("/verifications")
		{
			verifications.GET("/:id", verificationHandler.Get)
			verifications.PUT("/:id", verificationHandler.Update)
			verifications.POST("/:id/archive", verificationHandler.UploadArchive)
		}

		toc := v1.Group("/toc")
		{
			toc.GET("", tocHandler.Sections)
			toc.GET("/sections/:slug", tocHandler.SectionBySlug)
			toc.GET("/entries", tocHandler.ListEntries)
			toc.POST("/entries", tocHandler.CreateEntry)
			toc.GET("/entries/:id", tocHandler.GetEntry)
			toc.PUT("/entries/:id", tocHandler.UpdateEntry)
			toc.DELETE("/entries/:id", tocHandler.DeleteEntry)
			toc.GET("/entry-types", tocHandler.ListEntryTypes)
			toc.POST("/entry-types", tocHandler.CreateEntryType)
			toc.DELETE("/entry-types/:id", tocHandler.DeleteEntryType)
			toc.GET("/options", tocHandler.ListOptions)
			toc.POST("/options", tocHandler.CreateOption)
		}

		exports := v1.Group("/exports")
		{
			exports.GET("", exportHandler.StreamExport)
		}
	}

	// Canonical article detail path: the year segment is cosmetic, the id is
	// the routing key
	router.GET("/compendia/:year/:id", compendiaHandler.GetByCanonicalPath)

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "researchcompendia",
	})
}

// metricsHandler returns row counts per resource
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		compendiaCount, _ := services.Export.GetCount(ctx, "compendia")
		verificationsCount, _ := services.Export.GetCount(ctx, "verifications")

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"compendia":     compendiaCount,
				"verifications": verificationsCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs each request with latency
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}

// corsMiddleware sets permissive CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
