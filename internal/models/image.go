package models

type QuestionImage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	ImageURL   string `gorm:"not null" json:"image_url"`
}

type AnswerImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AnswerID uint   `gorm:"not null;index" json:"answer_id"`
	ImageURL string `gorm:"not null" json:"image_url"`
}
