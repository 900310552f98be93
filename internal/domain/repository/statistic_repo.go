package repository

import (
	"github.com/yourusername/quiz-store/internal/domain/entity"
)

// StatisticRepository хранит записи о попытках ответа.
// Записи только добавляются: обновления и удаления не предусмотрены.
type StatisticRepository interface {
	Create(stat *entity.QuizStatistic) error
	List() ([]entity.QuizStatistic, error)
	GetByQuestionID(questionID int64) ([]entity.QuizStatistic, error)
}
