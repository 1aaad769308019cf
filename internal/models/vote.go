package models

import "time"

// AnswerVote - one row per (answer, voter) pair. VoterID is the email claim
// from the caller's token. CreatedAt doubles as the last-modified timestamp
// and is refreshed when the vote switches direction.
type AnswerVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AnswerID  uint      `gorm:"not null;uniqueIndex:idx_answer_voter" json:"answer_id"`
	VoterID   string    `gorm:"not null;uniqueIndex:idx_answer_voter" json:"voter_id"`
	IsUpvote  bool      `json:"is_upvote"`
	CreatedAt time.Time `json:"created_at"`
}

type CastVoteRequest struct {
	IsUpvote *bool `json:"is_upvote" binding:"required"`
}
