package router

import (
	"github.com/gin-gonic/gin"

	"finsight/internal/config"
	"finsight/internal/handler"
	"finsight/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	analysisH *handler.AnalysisHandler,
	chatH *handler.ChatHandler,
	sessionH *handler.SessionHandler,
	currentH *handler.CurrentHandler,
	archiveH *handler.ArchiveHandler,
	noteH *handler.NoteHandler,
	ratingH *handler.RatingHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Analysis pipeline
	v1.POST("/analysis", analysisH.Analyze)
	v1.POST("/chat", chatH.Chat)

	// Conversation sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Begin)
	sessions.POST("/:id/ask", sessionH.Ask)
	sessions.DELETE("/:id", sessionH.Reset)

	// Current-analysis cache
	current := v1.Group("/current")
	current.GET("", currentH.Get)
	current.PUT("", currentH.Put)
	current.DELETE("", currentH.Delete)

	// Saved-analysis archive
	archive := v1.Group("/archive")
	archive.GET("", archiveH.List)
	archive.POST("", archiveH.Save)
	archive.GET("/export", archiveH.Export)
	archive.DELETE("", archiveH.Clear)
	archive.DELETE("/:id", archiveH.Delete)

	// Reviewer notes
	notes := v1.Group("/notes")
	notes.GET("", noteH.List)
	notes.POST("", noteH.Create)
	notes.PUT("/:id", noteH.Update)
	notes.DELETE("/:id", noteH.Delete)

	// Company ratings
	ratings := v1.Group("/ratings")
	ratings.GET("", ratingH.List)
	ratings.POST("", ratingH.Create)
	ratings.DELETE("/:id", ratingH.Delete)

	return r
}
