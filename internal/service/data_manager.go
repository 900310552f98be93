package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/quiz-store/internal/domain/entity"
	"github.com/yourusername/quiz-store/internal/domain/repository"
	"github.com/yourusername/quiz-store/internal/validation"
)

// DataManager управляет темами, вопросами, ответами и статистикой поверх репозиториев.
// Решает, вставлять или обновлять сущность, синхронизирует ответы вопроса
// и восстанавливает связи между загруженными сущностями.
type DataManager struct {
	repos repository.Repositories
	tx    repository.Transactor
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewDataManager создает новый DataManager
func NewDataManager(repos repository.Repositories, tx repository.Transactor, log logrus.FieldLogger) *DataManager {
	return &DataManager{
		repos: repos,
		tx:    tx,
		log:   log.WithField("service", "data_manager"),
		now:   time.Now,
	}
}

// ---------------------------------------------------------------------------
// Темы
// ---------------------------------------------------------------------------

// SaveTheme вставляет новую тему (id <= 0) или обновляет существующую
func (m *DataManager) SaveTheme(theme *entity.Theme) error {
	if theme == nil {
		return ErrNilTheme
	}

	if theme.ID <= 0 {
		if err := m.repos.Themes.Create(theme); err != nil {
			return fmt.Errorf("error inserting theme: %w", err)
		}
		m.log.WithField("theme_id", theme.ID).Debug("theme inserted")
		return nil
	}

	if err := m.repos.Themes.Update(theme); err != nil {
		return fmt.Errorf("error updating theme: %w", err)
	}
	return nil
}

// DeleteTheme удаляет тему. Вопросы и ответы удаляются каскадом в схеме.
func (m *DataManager) DeleteTheme(id int64) error {
	if err := m.repos.Themes.Delete(id); err != nil {
		return fmt.Errorf("error deleting theme: %w", err)
	}
	m.log.WithField("theme_id", id).Info("theme deleted")
	return nil
}

// GetAllThemes возвращает все темы
func (m *DataManager) GetAllThemes() ([]entity.Theme, error) {
	themes, err := m.repos.Themes.List()
	if err != nil {
		return nil, fmt.Errorf("error loading themes: %w", err)
	}
	return themes, nil
}

// CheckTheme проверяет заголовок и описание темы против всех сохраненных тем.
// exclude - редактируемая тема (nil для новой).
func (m *DataManager) CheckTheme(title, text string, exclude *entity.Theme) error {
	themes, err := m.GetAllThemes()
	if err != nil {
		return err
	}
	return validation.ValidateTheme(title, text, themes, exclude)
}

// ---------------------------------------------------------------------------
// Вопросы
// ---------------------------------------------------------------------------

// GetQuestionsFor возвращает вопросы темы, у каждого набор ответов заменен свежезагруженным.
// Для nil или несохраненной темы возвращается пустой список.
func (m *DataManager) GetQuestionsFor(theme *entity.Theme) ([]entity.Question, error) {
	if theme == nil || theme.ID <= 0 {
		return nil, nil
	}

	questions, err := m.repos.Questions.GetByTheme(theme)
	if err != nil {
		return nil, fmt.Errorf("error loading questions: %w", err)
	}
	for i := range questions {
		if err := m.hydrateAnswers(m.repos, &questions[i]); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// LoadThemeQuestions загружает вопросы темы вместе с ответами и кладет их в саму тему
func (m *DataManager) LoadThemeQuestions(theme *entity.Theme) error {
	questions, err := m.GetQuestionsFor(theme)
	if err != nil {
		return err
	}
	if theme == nil {
		return nil
	}
	theme.ClearQuestions()
	for i := range questions {
		theme.AddQuestion(&questions[i])
	}
	return nil
}

// GetFullQuestionByID возвращает вопрос с ответами и полностью загруженной темой
func (m *DataManager) GetFullQuestionByID(id int64) (*entity.Question, error) {
	question, err := m.repos.Questions.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error loading question: %w", err)
	}
	if err := m.hydrateAnswers(m.repos, question); err != nil {
		return nil, err
	}

	theme, err := m.repos.Themes.GetByID(question.ThemeRef())
	if err != nil {
		return nil, fmt.Errorf("error loading theme: %w", err)
	}
	question.SetTheme(theme)
	return question, nil
}

// FindQuestionsByTheme возвращает вопросы темы без ответов
func (m *DataManager) FindQuestionsByTheme(theme *entity.Theme) ([]entity.Question, error) {
	questions, err := m.repos.Questions.GetByTheme(theme)
	if err != nil {
		return nil, fmt.Errorf("error loading questions: %w", err)
	}
	return questions, nil
}

// CheckQuestion проверяет вопрос против уже сохраненных вопросов его темы.
// Если вопрос уже сохранен, он сам исключается из проверки на дубликат.
func (m *DataManager) CheckQuestion(question *entity.Question, theme *entity.Theme) error {
	if theme != nil && theme.IsPersisted() {
		if err := m.LoadThemeQuestions(theme); err != nil {
			return err
		}
	}
	var exclude *entity.Question
	if question.IsPersisted() {
		exclude = question
	}
	return validation.ValidateQuestion(question, theme, exclude)
}

// SaveQuestion вставляет или обновляет вопрос и синхронизирует его ответы:
// все строки ответов вопроса удаляются, затем вставляется каждый ответ из памяти.
// Запись вопроса и синхронизация выполняются в одной транзакции; при ошибке
// id вопроса и ответов в памяти возвращаются к прежним значениям.
func (m *DataManager) SaveQuestion(question *entity.Question) error {
	if question == nil {
		return ErrNilQuestion
	}
	if question.ThemeRef() <= 0 {
		return ErrNoValidTheme
	}

	snap := snapshotIDs(question)
	err := m.tx.WithinTransaction(func(repos repository.Repositories) error {
		if question.ID <= 0 {
			if err := repos.Questions.Create(question); err != nil {
				return fmt.Errorf("error inserting question: %w", err)
			}
		} else if err := repos.Questions.Update(question); err != nil {
			return fmt.Errorf("error updating question: %w", err)
		}
		return m.saveAnswers(repos, question)
	})
	if err != nil {
		snap.restore(question)
		m.log.WithError(err).WithField("question_id", question.ID).Warn("question not saved")
		return err
	}

	if question.Theme != nil {
		question.Theme.AddQuestion(question)
	}
	return nil
}

// saveAnswers пересоздает ответы вопроса в хранилище
func (m *DataManager) saveAnswers(repos repository.Repositories, question *entity.Question) error {
	if err := repos.Answers.DeleteByQuestionID(question.ID); err != nil {
		return fmt.Errorf("error deleting answers: %w", err)
	}
	for _, answer := range question.Answers.All() {
		answer.QuestionID = question.ID
		if err := repos.Answers.Create(answer); err != nil {
			return fmt.Errorf("error inserting answer: %w", err)
		}
	}
	return nil
}

// DeleteQuestion удаляет вопрос; ответы удаляются каскадом
func (m *DataManager) DeleteQuestion(question *entity.Question) error {
	if question == nil {
		return ErrNilQuestion
	}
	if err := m.repos.Questions.Delete(question.ID); err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if question.Theme != nil {
		question.Theme.RemoveQuestionByID(question.ID)
	}
	return nil
}

// hydrateAnswers заменяет набор ответов вопроса данными из хранилища
func (m *DataManager) hydrateAnswers(repos repository.Repositories, question *entity.Question) error {
	answers, err := repos.Answers.GetByQuestion(question)
	if err != nil {
		return fmt.Errorf("error loading answers: %w", err)
	}
	question.Answers.Clear()
	for i := range answers {
		answers[i].QuestionID = question.ID
		question.Answers.Add(&answers[i])
	}
	return nil
}

// ---------------------------------------------------------------------------
// Статистика
// ---------------------------------------------------------------------------

// RecordStatistic добавляет запись статистики. Пустая дата заменяется текущим временем.
func (m *DataManager) RecordStatistic(stat *entity.QuizStatistic) error {
	if stat == nil {
		return ErrNilStatistic
	}
	if stat.Date.IsZero() {
		stat.Date = m.now()
	}
	if err := m.repos.Statistics.Create(stat); err != nil {
		return fmt.Errorf("error inserting statistic: %w", err)
	}
	return nil
}

// FindAllStatistics возвращает всю статистику
func (m *DataManager) FindAllStatistics() ([]entity.QuizStatistic, error) {
	stats, err := m.repos.Statistics.List()
	if err != nil {
		return nil, fmt.Errorf("error loading statistics: %w", err)
	}
	return stats, nil
}

// FindStatisticsByQuestionID возвращает статистику одного вопроса
func (m *DataManager) FindStatisticsByQuestionID(questionID int64) ([]entity.QuizStatistic, error) {
	stats, err := m.repos.Statistics.GetByQuestionID(questionID)
	if err != nil {
		return nil, fmt.Errorf("error loading statistics: %w", err)
	}
	return stats, nil
}

// ResolveThemes раскрывает выбор темы: все реальные темы либо одна выбранная
func (m *DataManager) ResolveThemes(sel entity.ThemeSelection) ([]entity.Theme, error) {
	if sel.IsAll() {
		return m.GetAllThemes()
	}
	if sel.Theme() == nil {
		return nil, nil
	}
	return []entity.Theme{*sel.Theme()}, nil
}

// QuestionsFor возвращает вопросы выбранных тем без ответов
func (m *DataManager) QuestionsFor(sel entity.ThemeSelection) ([]entity.Question, error) {
	themes, err := m.ResolveThemes(sel)
	if err != nil {
		return nil, err
	}

	var out []entity.Question
	for i := range themes {
		questions, err := m.FindQuestionsByTheme(&themes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, questions...)
	}
	return out, nil
}

// CollectStatistics собирает статистику по выбору темы и вопроса.
// Конкретный вопрос дает только его статистику; "все вопросы" объединяет
// статистику всех вопросов выбранных тем.
func (m *DataManager) CollectStatistics(themeSel entity.ThemeSelection, questionSel entity.QuestionSelection) ([]entity.QuizStatistic, error) {
	if !questionSel.IsAll() {
		q := questionSel.Question()
		if q == nil || q.ID <= 0 {
			return nil, nil
		}
		return m.FindStatisticsByQuestionID(q.ID)
	}

	themes, err := m.ResolveThemes(themeSel)
	if err != nil {
		return nil, err
	}

	var out []entity.QuizStatistic
	for i := range themes {
		questions, err := m.FindQuestionsByTheme(&themes[i])
		if err != nil {
			return nil, err
		}
		for _, q := range questions {
			stats, err := m.FindStatisticsByQuestionID(q.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, stats...)
		}
	}
	return out, nil
}

// idSnapshot хранит id вопроса и его ответов до сохранения
type idSnapshot struct {
	questionID int64
	themeID    int64
	answers    []answerIDs
}

type answerIDs struct {
	answer     *entity.Answer
	id         int64
	questionID int64
}

func snapshotIDs(q *entity.Question) idSnapshot {
	snap := idSnapshot{questionID: q.ID, themeID: q.ThemeID}
	for _, a := range q.Answers.All() {
		snap.answers = append(snap.answers, answerIDs{answer: a, id: a.ID, questionID: a.QuestionID})
	}
	return snap
}

func (s idSnapshot) restore(q *entity.Question) {
	q.ID = s.questionID
	q.ThemeID = s.themeID
	for _, a := range s.answers {
		a.answer.ID = a.id
		a.answer.QuestionID = a.questionID
	}
}
