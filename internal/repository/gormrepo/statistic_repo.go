package gormrepo

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-store/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-store/internal/pkg/errors"
	"github.com/yourusername/quiz-store/pkg/metrics"
)

// StatisticRepo реализует repository.StatisticRepository
type StatisticRepo struct {
	base
}

// NewStatisticRepo создает новый репозиторий статистики
func NewStatisticRepo(db *gorm.DB, log logrus.FieldLogger, m *metrics.StoreMetrics) *StatisticRepo {
	return &StatisticRepo{base: newBase(db, log, m, "statistic")}
}

// Create добавляет запись статистики
func (r *StatisticRepo) Create(stat *entity.QuizStatistic) error {
	start := time.Now()
	if stat.QuestionID <= 0 {
		err := fmt.Errorf("%w: statistic has no question id", apperrors.ErrInvalidReference)
		return r.finish("create", start, err, nil)
	}

	prevID := stat.ID
	stat.ID = 0
	if err := r.db.Create(stat).Error; err != nil {
		stat.ID = prevID
		return r.finish("create", start, err, logrus.Fields{"question_id": stat.QuestionID})
	}
	return r.finish("create", start, nil, nil)
}

// List возвращает всю статистику в хронологическом порядке
func (r *StatisticRepo) List() ([]entity.QuizStatistic, error) {
	start := time.Now()
	var stats []entity.QuizStatistic
	if err := r.db.Order("date").Order("id").Find(&stats).Error; err != nil {
		return nil, r.finish("list", start, err, nil)
	}
	return stats, r.finish("list", start, nil, nil)
}

// GetByQuestionID возвращает статистику одного вопроса в хронологическом порядке
func (r *StatisticRepo) GetByQuestionID(questionID int64) ([]entity.QuizStatistic, error) {
	start := time.Now()
	var stats []entity.QuizStatistic
	err := r.db.Where("question_id = ?", questionID).Order("date").Order("id").Find(&stats).Error
	if err != nil {
		return nil, r.finish("get_by_question", start, err, logrus.Fields{"question_id": questionID})
	}
	return stats, r.finish("get_by_question", start, nil, nil)
}
