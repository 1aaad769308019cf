package models

import "time"

// Read-shaped projections. Never persisted; vote counts are derived fresh on
// every read so they cannot drift from the vote rows.

type AnswerView struct {
	ID            uint      `json:"id"`
	Body          string    `json:"body"`
	QuestionID    uint      `json:"question_id"`
	CreatedAt     time.Time `json:"created_at"`
	ImageURLs     []string  `json:"image_urls"`
	UpvoteCount   int       `json:"upvote_count"`
	DownvoteCount int       `json:"downvote_count"`
	// UserVote is "upvote", "downvote", or null when the caller has no vote.
	UserVote *string `json:"user_vote"`
}

type QuestionView struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Body      string       `json:"body,omitempty"`
	Category  string       `json:"category"`
	Answered  bool         `json:"answered"`
	CreatedAt time.Time    `json:"created_at"`
	ImageURLs []string     `json:"image_urls"`
	Answers   []AnswerView `json:"answers"`
}

type VoteCounts struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

type VoteSummary struct {
	Upvotes   int64   `json:"upvotes"`
	Downvotes int64   `json:"downvotes"`
	UserVote  *string `json:"user_vote"`
}

type RelatedQuestion struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Body         string   `json:"body,omitempty"`
	Category     string   `json:"category"`
	AnswerBodies []string `json:"answer_bodies"`
}

type ChatbotRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatbotResponse struct {
	Response         string            `json:"response"`
	RelatedQuestions []RelatedQuestion `json:"related_questions"`
}
