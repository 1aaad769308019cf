package models

import "time"

type Answer struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Body       string        `gorm:"not null" json:"body"`
	QuestionID uint          `gorm:"not null;index" json:"question_id"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Images     []AnswerImage `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Votes      []AnswerVote  `gorm:"constraint:OnDelete:CASCADE" json:"votes,omitempty"`
}

type CreateAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

type UpdateAnswerRequest struct {
	ID   uint   `json:"id"`
	Body string `json:"body" binding:"required"`
}
