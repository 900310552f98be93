package service

import (
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-store/internal/domain/entity"
	"github.com/yourusername/quiz-store/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockThemeRepository реализует repository.ThemeRepository
type MockThemeRepository struct {
	mock.Mock
}

func (m *MockThemeRepository) GetByID(id int64) (*entity.Theme, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Theme), args.Error(1)
}

func (m *MockThemeRepository) List() ([]entity.Theme, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Theme), args.Error(1)
}

func (m *MockThemeRepository) Create(theme *entity.Theme) error {
	args := m.Called(theme)
	return args.Error(0)
}

func (m *MockThemeRepository) Update(theme *entity.Theme) error {
	args := m.Called(theme)
	return args.Error(0)
}

func (m *MockThemeRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(id int64) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByTheme(theme *entity.Theme) ([]entity.Question, error) {
	args := m.Called(theme)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAnswerRepository реализует repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) GetByQuestion(question *entity.Question) ([]entity.Answer, error) {
	args := m.Called(question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Answer), args.Error(1)
}

func (m *MockAnswerRepository) Create(answer *entity.Answer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) Update(answer *entity.Answer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) DeleteByQuestionID(questionID int64) error {
	args := m.Called(questionID)
	return args.Error(0)
}

// MockStatisticRepository реализует repository.StatisticRepository
type MockStatisticRepository struct {
	mock.Mock
}

func (m *MockStatisticRepository) Create(stat *entity.QuizStatistic) error {
	args := m.Called(stat)
	return args.Error(0)
}

func (m *MockStatisticRepository) List() ([]entity.QuizStatistic, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizStatistic), args.Error(1)
}

func (m *MockStatisticRepository) GetByQuestionID(questionID int64) ([]entity.QuizStatistic, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizStatistic), args.Error(1)
}

// passthroughTransactor вызывает fn с теми же репозиториями, без транзакции
type passthroughTransactor struct {
	repos repository.Repositories
}

func (t passthroughTransactor) WithinTransaction(fn func(repository.Repositories) error) error {
	return fn(t.repos)
}

type repoMocks struct {
	themes     *MockThemeRepository
	questions  *MockQuestionRepository
	answers    *MockAnswerRepository
	statistics *MockStatisticRepository
}

func newMockRepos() (repository.Repositories, repoMocks) {
	m := repoMocks{
		themes:     new(MockThemeRepository),
		questions:  new(MockQuestionRepository),
		answers:    new(MockAnswerRepository),
		statistics: new(MockStatisticRepository),
	}
	return repository.Repositories{
		Themes:     m.themes,
		Questions:  m.questions,
		Answers:    m.answers,
		Statistics: m.statistics,
	}, m
}
