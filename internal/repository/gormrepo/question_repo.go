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

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	base
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB, log logrus.FieldLogger, m *metrics.StoreMetrics) *QuestionRepo {
	return &QuestionRepo{base: newBase(db, log, m, "question")}
}

// GetByID возвращает вопрос по ID. Тема заполняется только id.
func (r *QuestionRepo) GetByID(id int64) (*entity.Question, error) {
	start := time.Now()
	var question entity.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, r.finish("get_by_id", start, err, logrus.Fields{"question_id": id})
	}
	question.Theme = &entity.Theme{ID: question.ThemeID}
	return &question, r.finish("get_by_id", start, nil, nil)
}

// GetByTheme возвращает вопросы темы, упорядоченные по id, без ответов
func (r *QuestionRepo) GetByTheme(theme *entity.Theme) ([]entity.Question, error) {
	if theme == nil || theme.ID <= 0 {
		return nil, nil
	}

	start := time.Now()
	var questions []entity.Question
	err := r.db.Where("theme_id = ?", theme.ID).Order("id").Find(&questions).Error
	if err != nil {
		return nil, r.finish("get_by_theme", start, err, logrus.Fields{"theme_id": theme.ID})
	}
	for i := range questions {
		questions[i].Theme = theme
	}
	return questions, r.finish("get_by_theme", start, nil, nil)
}

// Create вставляет вопрос и записывает сгенерированный id
func (r *QuestionRepo) Create(question *entity.Question) error {
	start := time.Now()
	themeID := question.ThemeRef()
	if themeID <= 0 {
		err := fmt.Errorf("%w: question has no persisted theme", apperrors.ErrInvalidReference)
		return r.finish("create", start, err, logrus.Fields{"title": question.Title})
	}

	prevID := question.ID
	question.ID = 0
	question.ThemeID = themeID
	if err := r.db.Create(question).Error; err != nil {
		question.ID = prevID
		return r.finish("create", start, err, logrus.Fields{"theme_id": themeID, "title": question.Title})
	}
	return r.finish("create", start, nil, nil)
}

// Update обновляет тему, заголовок и текст вопроса
func (r *QuestionRepo) Update(question *entity.Question) error {
	start := time.Now()
	themeID := question.ThemeRef()
	res := r.db.Model(&entity.Question{}).Where("id = ?", question.ID).Updates(map[string]interface{}{
		"theme_id": themeID,
		"title":    question.Title,
		"text":     question.Text,
	})
	if err := affected(res); err != nil {
		return r.finish("update", start, err, logrus.Fields{"question_id": question.ID})
	}
	question.ThemeID = themeID
	return r.finish("update", start, nil, nil)
}

// Delete удаляет вопрос; ответы удаляются каскадом
func (r *QuestionRepo) Delete(id int64) error {
	start := time.Now()
	res := r.db.Delete(&entity.Question{}, id)
	return r.finish("delete", start, affected(res), logrus.Fields{"question_id": id})
}
