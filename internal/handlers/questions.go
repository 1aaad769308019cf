package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/solutionfaq/backend/internal/middleware"
	"github.com/solutionfaq/backend/internal/models"
	"github.com/solutionfaq/backend/internal/services"
)

type QuestionHandler struct {
	db      *gorm.DB
	search  *services.SearchService
	chatbot *services.ChatbotService
}

func NewQuestionHandler(db *gorm.DB, search *services.SearchService, chatbot *services.ChatbotService) *QuestionHandler {
	return &QuestionHandler{db: db, search: search, chatbot: chatbot}
}

// CreateQuestion creates a new question
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := models.Question{
		Title:    input.Title,
		Body:     input.Body,
		Category: input.Category,
	}

	if err := h.db.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, services.QuestionToView(question, middleware.VoterID(c)))
}

// GetQuestions returns all questions, newest first, optionally filtered by
// category.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	query := services.QuestionGraph(h.db).Order("created_at desc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	voterID := middleware.VoterID(c)
	views := make([]models.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, services.QuestionToView(q, voterID))
	}

	c.JSON(http.StatusOK, views)
}

// GetQuestion returns a single question by ID
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var question models.Question
	if err := services.QuestionGraph(h.db).First(&question, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	c.JSON(http.StatusOK, services.QuestionToView(question, middleware.VoterID(c)))
}

// UpdateQuestion updates a question's title, body, and category
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ID != 0 && input.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID mismatch"})
		return
	}

	var question models.Question
	if err := h.db.First(&question, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	question.Title = input.Title
	question.Body = input.Body
	question.Category = input.Category

	if err := h.db.Save(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteQuestion deletes a question; answers, images, and votes go with it
// via the schema's cascade rules.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var question models.Question
	if err := h.db.First(&question, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if err := h.db.Delete(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCategories returns the distinct categories in use
func (h *QuestionHandler) GetCategories(c *gin.Context) {
	var categories []string
	if err := h.db.Model(&models.Question{}).Distinct().Pluck("category", &categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	if categories == nil {
		categories = []string{}
	}

	c.JSON(http.StatusOK, categories)
}

// SearchQuestions handles GET /questions/search?q=
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	views, err := h.search.Search(c.Query("q"), middleware.VoterID(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search query cannot be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	if views == nil {
		views = []models.QuestionView{}
	}

	c.JSON(http.StatusOK, views)
}

// ChatbotQuery answers a free-form message from the FAQ data. Always replies
// 200 for a well-formed request; service failures degrade inside the chatbot.
func (h *QuestionHandler) ChatbotQuery(c *gin.Context) {
	var input models.ChatbotRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.chatbot.Answer(c.Request.Context(), input.Message))
}
