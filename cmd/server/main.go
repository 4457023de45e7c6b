package main

import (
	"fmt"
	"log"

	"finsight/internal/config"
	"finsight/internal/extract"
	"finsight/internal/handler"
	"finsight/internal/inference/mistral"
	"finsight/internal/repository/memory"
	"finsight/internal/repository/postgres"
	"finsight/internal/router"
	"finsight/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories and stores
	archiveRepo := postgres.NewArchiveRepo(db)
	noteRepo := postgres.NewNoteRepo(db)
	ratingRepo := postgres.NewRatingRepo(db)
	currentStore := memory.NewCurrentStore()

	// Initialize collaborators
	llm := mistral.NewClient(&cfg.Inference)
	extractor := extract.NewPDFExtractor()

	// Initialize services
	analysisSvc := service.NewAnalysisService(llm, &cfg.Analysis, &cfg.Inference)
	conversationSvc := service.NewConversationService(llm, &cfg.Analysis, &cfg.Chat)
	archiveSvc := service.NewArchiveService(archiveRepo)
	noteSvc := service.NewNoteService(noteRepo)
	ratingSvc := service.NewRatingService(ratingRepo)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc, extractor, currentStore, &cfg.Analysis)
	chatH := handler.NewChatHandler(conversationSvc, &cfg.Analysis)
	sessionH := handler.NewSessionHandler(conversationSvc, &cfg.Analysis)
	currentH := handler.NewCurrentHandler(currentStore)
	archiveH := handler.NewArchiveHandler(archiveSvc)
	noteH := handler.NewNoteHandler(noteSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, analysisH, chatH, sessionH, currentH, archiveH, noteH, ratingH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
