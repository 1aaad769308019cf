package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solutionfaq/backend/internal/models"
)

type UploadHandler struct {
	db        *gorm.DB
	uploadDir string
	logger    *zap.Logger
}

func NewUploadHandler(db *gorm.DB, uploadDir string, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{db: db, uploadDir: uploadDir, logger: logger}
}

// UploadQuestionImages accepts multipart files and attaches the stored URLs
// to a question.
func (h *UploadHandler) UploadQuestionImages(c *gin.Context) {
	questionID, ok := parseFormID(c, "question_id")
	if !ok {
		return
	}

	var question models.Question
	if err := h.db.First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	urls, ok := h.saveFiles(c)
	if !ok {
		return
	}

	rows := make([]models.QuestionImage, 0, len(urls))
	for _, url := range urls {
		rows = append(rows, models.QuestionImage{QuestionID: questionID, ImageURL: url})
	}
	if len(rows) > 0 {
		if err := h.db.Create(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save images"})
			return
		}
	}

	c.JSON(http.StatusOK, urls)
}

// UploadAnswerImages accepts multipart files and attaches the stored URLs to
// an answer.
func (h *UploadHandler) UploadAnswerImages(c *gin.Context) {
	answerID, ok := parseFormID(c, "answer_id")
	if !ok {
		return
	}

	var answer models.Answer
	if err := h.db.First(&answer, answerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	urls, ok := h.saveFiles(c)
	if !ok {
		return
	}

	rows := make([]models.AnswerImage, 0, len(urls))
	for _, url := range urls {
		rows = append(rows, models.AnswerImage{AnswerID: answerID, ImageURL: url})
	}
	if len(rows) > 0 {
		if err := h.db.Create(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save images"})
			return
		}
	}

	c.JSON(http.StatusOK, urls)
}

// saveFiles stores every uploaded "files" part under a fresh uuid name and
// returns the public URLs. Replies with an error itself when ok is false.
func (h *UploadHandler) saveFiles(c *gin.Context) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return nil, false
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return nil, false
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("failed to create upload dir", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store files"})
		return nil, false
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			h.logger.Error("failed to store uploaded file",
				zap.String("filename", file.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store files"})
			return nil, false
		}
		urls = append(urls, "/uploads/"+name)
	}

	return urls, true
}

func parseFormID(c *gin.Context, field string) (uint, bool) {
	id, err := strconv.ParseUint(c.PostForm(field), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": field + " is required"})
		return 0, false
	}
	return uint(id), true
}
