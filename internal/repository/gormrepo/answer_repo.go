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

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	base
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB, log logrus.FieldLogger, m *metrics.StoreMetrics) *AnswerRepo {
	return &AnswerRepo{base: newBase(db, log, m, "answer")}
}

// GetByQuestion возвращает ответы вопроса в порядке вставки
func (r *AnswerRepo) GetByQuestion(question *entity.Question) ([]entity.Answer, error) {
	if question == nil || question.ID <= 0 {
		return nil, nil
	}

	start := time.Now()
	var answers []entity.Answer
	err := r.db.Where("question_id = ?", question.ID).Order("id").Find(&answers).Error
	if err != nil {
		return nil, r.finish("get_by_question", start, err, logrus.Fields{"question_id": question.ID})
	}
	return answers, r.finish("get_by_question", start, nil, nil)
}

// Create вставляет ответ. QuestionID должен ссылаться на сохраненный вопрос.
func (r *AnswerRepo) Create(answer *entity.Answer) error {
	start := time.Now()
	if answer.QuestionID <= 0 {
		err := fmt.Errorf("%w: answer has no persisted question", apperrors.ErrInvalidReference)
		return r.finish("create", start, err, logrus.Fields{"text": answer.Text})
	}

	prevID := answer.ID
	answer.ID = 0
	if err := r.db.Create(answer).Error; err != nil {
		answer.ID = prevID
		return r.finish("create", start, err, logrus.Fields{"question_id": answer.QuestionID})
	}
	return r.finish("create", start, nil, nil)
}

// Update обновляет текст и флаг правильности ответа
func (r *AnswerRepo) Update(answer *entity.Answer) error {
	start := time.Now()
	res := r.db.Model(&entity.Answer{}).Where("id = ?", answer.ID).Updates(map[string]interface{}{
		"question_id": answer.QuestionID,
		"text":        answer.Text,
		"is_correct":  answer.IsCorrect,
	})
	return r.finish("update", start, affected(res), logrus.Fields{"answer_id": answer.ID})
}

// DeleteByQuestionID удаляет все ответы вопроса. Отсутствие ответов ошибкой не считается.
func (r *AnswerRepo) DeleteByQuestionID(questionID int64) error {
	start := time.Now()
	err := r.db.Where("question_id = ?", questionID).Delete(&entity.Answer{}).Error
	return r.finish("delete_by_question", start, err, logrus.Fields{"question_id": questionID})
}
