package main

import (
	"go.uber.org/zap"

	"github.com/solutionfaq/backend/internal/config"
	"github.com/solutionfaq/backend/internal/database"
	"github.com/solutionfaq/backend/internal/handlers"
	"github.com/solutionfaq/backend/internal/server"
	"github.com/solutionfaq/backend/internal/services"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	voteService := services.NewVoteService(db, logger)
	searchService := services.NewSearchService(db)
	chatbotService := services.NewChatbotService(searchService, services.ChatbotConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.ChatbotTimeout,
	}, logger)

	handler := handlers.NewHandler(handlers.Deps{
		DB:        db,
		Auth:      authService,
		Votes:     voteService,
		Search:    searchService,
		Chatbot:   chatbotService,
		UploadDir: cfg.UploadDir,
		Logger:    logger,
	})

	srv := server.New(cfg, db, handler, authService)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
