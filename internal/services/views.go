package services

import (
	"gorm.io/gorm"

	"github.com/solutionfaq/backend/internal/models"
)

// QuestionGraph preloads the nested rows every read path needs: answers in
// insertion order with their images and votes, plus the question's own images.
func QuestionGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.id") }).
		Preload("Answers.Images").
		Preload("Answers.Votes").
		Preload("Images")
}

// AnswerGraph preloads an answer's images and votes.
func AnswerGraph(db *gorm.DB) *gorm.DB {
	return db.Preload("Images").Preload("Votes")
}

// AnswerToView projects an answer loaded through AnswerGraph into its read
// shape. Counts are computed from the vote rows on every call; voterID selects
// the caller's own vote label and may be empty.
func AnswerToView(a models.Answer, voterID string) models.AnswerView {
	view := models.AnswerView{
		ID:         a.ID,
		Body:       a.Body,
		QuestionID: a.QuestionID,
		CreatedAt:  a.CreatedAt,
		ImageURLs:  make([]string, 0, len(a.Images)),
	}

	for _, img := range a.Images {
		view.ImageURLs = append(view.ImageURLs, img.ImageURL)
	}

	for _, vote := range a.Votes {
		if vote.IsUpvote {
			view.UpvoteCount++
		} else {
			view.DownvoteCount++
		}
		if voterID != "" && vote.VoterID == voterID {
			view.UserVote = voteLabel(vote.IsUpvote)
		}
	}

	return view
}

// QuestionToView projects a question loaded through QuestionGraph into its
// read shape. Every read endpoint goes through this one function so vote
// counts cannot diverge between endpoints.
func QuestionToView(q models.Question, voterID string) models.QuestionView {
	view := models.QuestionView{
		ID:        q.ID,
		Title:     q.Title,
		Body:      q.Body,
		Category:  q.Category,
		Answered:  q.Answered,
		CreatedAt: q.CreatedAt,
		ImageURLs: make([]string, 0, len(q.Images)),
		Answers:   make([]models.AnswerView, 0, len(q.Answers)),
	}

	for _, img := range q.Images {
		view.ImageURLs = append(view.ImageURLs, img.ImageURL)
	}

	for _, a := range q.Answers {
		view.Answers = append(view.Answers, AnswerToView(a, voterID))
	}

	return view
}

func voteLabel(isUpvote bool) *string {
	label := "downvote"
	if isUpvote {
		label = "upvote"
	}
	return &label
}
