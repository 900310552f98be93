package entity

import "time"

// QuizStatistic - неизменяемая запись об одной попытке ответа на вопрос.
// Вопрос хранится по значению (QuestionID), без внешнего ключа.
type QuizStatistic struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID int64     `gorm:"column:question_id;not null;index" json:"question_id"`
	Correct    bool      `gorm:"not null" json:"correct"`
	Date       time.Time `gorm:"column:date;not null" json:"date"`
}

// TableName определяет имя таблицы для GORM
func (QuizStatistic) TableName() string {
	return "statistic"
}

// NewQuizStatistic создает запись статистики для вставки
func NewQuizStatistic(questionID int64, correct bool, date time.Time) *QuizStatistic {
	return &QuizStatistic{ID: UnsavedID, QuestionID: questionID, Correct: correct, Date: date}
}
