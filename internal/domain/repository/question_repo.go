package repository

import (
	"github.com/yourusername/quiz-store/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	// GetByID возвращает вопрос с "плоской" темой: у Theme заполнен только id
	GetByID(id int64) (*entity.Question, error)
	GetByTheme(theme *entity.Theme) ([]entity.Question, error)
	// Create вставляет вопрос и записывает сгенерированный id в question.ID
	Create(question *entity.Question) error
	Update(question *entity.Question) error
	Delete(id int64) error
}
