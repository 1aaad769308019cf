package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/solutionfaq/backend/internal/config"
	"github.com/solutionfaq/backend/internal/handlers"
	"github.com/solutionfaq/backend/internal/models"
	"github.com/solutionfaq/backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Question{}, &models.Answer{},
		&models.QuestionImage{}, &models.AnswerImage{}, &models.AnswerVote{},
	))

	cfg := &config.Config{
		Port:      "8080",
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	auth := services.NewAuthService(db, cfg.JWTSecret)
	votes := services.NewVoteService(db, zap.NewNop())
	search := services.NewSearchService(db)
	chatbot := services.NewChatbotService(search, services.ChatbotConfig{
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	handler := handlers.NewHandler(handlers.Deps{
		DB:        db,
		Auth:      auth,
		Votes:     votes,
		Search:    search,
		Chatbot:   chatbot,
		UploadDir: cfg.UploadDir,
		Logger:    zap.NewNop(),
	})

	s := &Server{db: db, handler: handler, auth: auth, cfg: cfg}
	return s.RegisterRoutes()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, username, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/questions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/questions", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginReturnsToken(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQuestionAnswerVoteFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "alice", "alice@example.com")

	// Create a question.
	w := doJSON(t, r, http.MethodPost, "/api/questions", token, models.CreateQuestionRequest{
		Title:    "How do I configure the VPN?",
		Body:     "The client times out on login.",
		Category: "Networking",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var question models.QuestionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))
	assert.False(t, question.Answered)
	assert.NotNil(t, question.Answers)

	// It shows up in the listing.
	w = doJSON(t, r, http.MethodGet, "/api/questions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing []models.QuestionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing, 1)

	// Blank search queries are rejected.
	w = doJSON(t, r, http.MethodGet, "/api/questions/search?q=%20", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Matching search finds it.
	w = doJSON(t, r, http.MethodGet, "/api/questions/search?q=vpn", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results []models.QuestionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)

	// Answering flips the answered flag.
	w = doJSON(t, r, http.MethodPost, "/api/answers", token, models.CreateAnswerRequest{
		QuestionID: question.ID,
		Body:       "Update the client and retry.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var answer models.AnswerView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/questions/%d", question.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))
	assert.True(t, question.Answered)
	require.Len(t, question.Answers, 1)

	// First cast records an upvote, second cast toggles it off.
	up := true
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/votes/answer/%d", answer.ID), token,
		models.CastVoteRequest{IsUpvote: &up})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var counts models.VoteCounts
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, int64(1), counts.Upvotes)
	assert.Equal(t, int64(0), counts.Downvotes)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/votes/answer/%d", answer.ID), token,
		models.CastVoteRequest{IsUpvote: &up})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, int64(0), counts.Upvotes)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/votes/answer/%d", answer.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.VoteSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, int64(0), summary.Upvotes)
	assert.Nil(t, summary.UserVote)

	// Categories reflect created questions.
	w = doJSON(t, r, http.MethodGet, "/api/questions/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Equal(t, []string{"Networking"}, categories)
}

func TestChatbotEndpointAlwaysAnswers(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/questions/chatbot", token, models.ChatbotRequest{
		Message: "how do I reset my password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.ChatbotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Response)
	assert.NotNil(t, resp.RelatedQuestions)

	w = doJSON(t, r, http.MethodPost, "/api/questions/chatbot", token, models.ChatbotRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
