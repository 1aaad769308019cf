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

type AnswerHandler struct {
	db *gorm.DB
}

func NewAnswerHandler(db *gorm.DB) *AnswerHandler {
	return &AnswerHandler{db: db}
}

// CreateAnswer attaches an answer to a question and flips the question's
// answered flag in the same transaction.
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer := models.Answer{
		Body:       input.Body,
		QuestionID: input.QuestionID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, input.QuestionID).Error; err != nil {
			return err
		}
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}
		return tx.Model(&question).Update("answered", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
		return
	}

	c.JSON(http.StatusCreated, services.AnswerToView(answer, middleware.VoterID(c)))
}

// GetAnswer returns a single answer with its images and vote counts
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var answer models.Answer
	if err := services.AnswerGraph(h.db).First(&answer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	c.JSON(http.StatusOK, services.AnswerToView(answer, middleware.VoterID(c)))
}

// UpdateAnswer updates an answer's body
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.UpdateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ID != 0 && input.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID mismatch"})
		return
	}

	var answer models.Answer
	if err := h.db.First(&answer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	answer.Body = input.Body
	if err := h.db.Save(&answer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update answer"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAnswer deletes an answer; its images and votes cascade with it
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var answer models.Answer
	if err := h.db.First(&answer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	if err := h.db.Delete(&answer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete answer"})
		return
	}

	c.Status(http.StatusNoContent)
}
