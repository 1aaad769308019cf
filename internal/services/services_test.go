package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/solutionfaq/backend/internal/models"
)

// newTestDB opens a fresh in-memory store per test. A single connection keeps
// the :memory: database alive and carries the foreign-key pragma.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
		&models.User{},
		&models.Question{},
		&models.Answer{},
		&models.QuestionImage{},
		&models.AnswerImage{},
		&models.AnswerVote{},
	))

	return db
}

func seedQuestion(t *testing.T, db *gorm.DB, title, body, category string, answers ...string) models.Question {
	t.Helper()

	q := models.Question{Title: title, Body: body, Category: category}
	require.NoError(t, db.Create(&q).Error)

	for _, body := range answers {
		a := models.Answer{Body: body, QuestionID: q.ID}
		require.NoError(t, db.Create(&a).Error)
		q.Answers = append(q.Answers, a)
	}
	if len(answers) > 0 {
		require.NoError(t, db.Model(&q).Update("answered", true).Error)
		q.Answered = true
	}

	return q
}

func seedQuestionAt(t *testing.T, db *gorm.DB, title, body, category string, createdAt time.Time) models.Question {
	t.Helper()

	q := models.Question{Title: title, Body: body, Category: category, CreatedAt: createdAt}
	require.NoError(t, db.Create(&q).Error)
	return q
}
