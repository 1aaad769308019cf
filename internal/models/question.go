package models

import "time"

type Question struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Title     string          `gorm:"not null" json:"title"`
	Body      string          `json:"body,omitempty"`
	Category  string          `gorm:"not null;index" json:"category"`
	Answered  bool            `gorm:"default:false" json:"answered"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Answers   []Answer        `gorm:"constraint:OnDelete:CASCADE" json:"answers,omitempty"`
	Images    []QuestionImage `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

type CreateQuestionRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	Category string `json:"category" binding:"required"`
}

type UpdateQuestionRequest struct {
	ID       uint   `json:"id"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	Category string `json:"category" binding:"required"`
}
