package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/solutionfaq/backend/internal/config"
	"github.com/solutionfaq/backend/internal/database"
	"github.com/solutionfaq/backend/internal/handlers"
	"github.com/solutionfaq/backend/internal/middleware"
	"github.com/solutionfaq/backend/internal/services"
)

type Server struct {
	db      *gorm.DB
	handler *handlers.Handler
	auth    *services.AuthService
	cfg     *config.Config
}

// New creates and configures the HTTP server around an already-wired handler
// set.
func New(cfg *config.Config, db *gorm.DB, handler *handlers.Handler, auth *services.AuthService) *http.Server {
	s := &Server{
		db:      db,
		handler: handler,
		auth:    auth,
		cfg:     cfg,
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, database.Health(s.db))
	})

	// Uploaded images
	r.Static("/uploads", s.cfg.UploadDir)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/register", s.handler.Auth.Register)
		api.POST("/auth/login", s.handler.Auth.Login)

		// Everything else requires authentication
		protected := api.Group("")
		protected.Use(middleware.JWTAuth(s.auth))
		{
			// Question routes
			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.GET("/questions", s.handler.Question.GetQuestions)
			protected.GET("/questions/categories", s.handler.Question.GetCategories)
			protected.GET("/questions/search", s.handler.Question.SearchQuestions)
			protected.POST("/questions/chatbot", s.handler.Question.ChatbotQuery)
			protected.GET("/questions/:id", s.handler.Question.GetQuestion)
			protected.PUT("/questions/:id", s.handler.Question.UpdateQuestion)
			protected.DELETE("/questions/:id", s.handler.Question.DeleteQuestion)

			// Answer routes
			protected.POST("/answers", s.handler.Answer.CreateAnswer)
			protected.GET("/answers/:id", s.handler.Answer.GetAnswer)
			protected.PUT("/answers/:id", s.handler.Answer.UpdateAnswer)
			protected.DELETE("/answers/:id", s.handler.Answer.DeleteAnswer)

			// Vote routes
			protected.POST("/votes/answer/:answerId", s.handler.Vote.CastVote)
			protected.GET("/votes/answer/:answerId", s.handler.Vote.GetVotes)

			// Image upload routes
			protected.POST("/uploads/question", s.handler.Upload.UploadQuestionImages)
			protected.POST("/uploads/answer", s.handler.Upload.UploadAnswerImages)
		}
	}

	return r
}
