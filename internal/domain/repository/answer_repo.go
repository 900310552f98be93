package repository

import (
	"github.com/yourusername/quiz-store/internal/domain/entity"
)

// AnswerRepository определяет методы для работы с вариантами ответов
type AnswerRepository interface {
	GetByQuestion(question *entity.Question) ([]entity.Answer, error)
	Create(answer *entity.Answer) error
	Update(answer *entity.Answer) error
	DeleteByQuestionID(questionID int64) error
}
