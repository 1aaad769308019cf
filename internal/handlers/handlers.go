package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solutionfaq/backend/internal/services"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Answer   *AnswerHandler
	Vote     *VoteHandler
	Upload   *UploadHandler
}

// Deps carries everything the handlers need; main wires it up.
type Deps struct {
	DB        *gorm.DB
	Auth      *services.AuthService
	Votes     *services.VoteService
	Search    *services.SearchService
	Chatbot   *services.ChatbotService
	UploadDir string
	Logger    *zap.Logger
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(deps Deps) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(deps.Auth),
		Question: NewQuestionHandler(deps.DB, deps.Search, deps.Chatbot),
		Answer:   NewAnswerHandler(deps.DB),
		Vote:     NewVoteHandler(deps.Votes),
		Upload:   NewUploadHandler(deps.DB, deps.UploadDir, deps.Logger),
	}
}

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
