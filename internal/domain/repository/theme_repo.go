package repository

import (
	"github.com/yourusername/quiz-store/internal/domain/entity"
)

// ThemeRepository определяет методы для работы с темами
type ThemeRepository interface {
	GetByID(id int64) (*entity.Theme, error)
	List() ([]entity.Theme, error)
	// Create вставляет тему и записывает сгенерированный id в theme.ID
	Create(theme *entity.Theme) error
	Update(theme *entity.Theme) error
	// Delete удаляет тему; вопросы и ответы удаляются каскадно схемой
	Delete(id int64) error
}
