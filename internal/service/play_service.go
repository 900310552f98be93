package service

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/quiz-store/internal/domain/entity"
)

// AnswerResult - результат проверки ответа на вопрос
type AnswerResult struct {
	Correct        bool
	CorrectAnswers []*entity.Answer
	Statistic      *entity.QuizStatistic
}

// PlayService выдает случайные вопросы и проверяет ответы, записывая статистику.
// Каждый экземпляр - отдельная игровая сессия со своим идентификатором.
type PlayService struct {
	data      *DataManager
	log       logrus.FieldLogger
	sessionID string
	intn      func(n int) int
	now       func() time.Time
}

// PlayOption настраивает PlayService
type PlayOption func(*PlayService)

// WithRandom задает источник случайного индекса вопроса (значение в [0, n))
func WithRandom(intn func(n int) int) PlayOption {
	return func(s *PlayService) { s.intn = intn }
}

// WithClock задает часы, которыми датируется статистика
func WithClock(now func() time.Time) PlayOption {
	return func(s *PlayService) { s.now = now }
}

// NewPlayService создает новую игровую сессию
func NewPlayService(data *DataManager, log logrus.FieldLogger, opts ...PlayOption) *PlayService {
	s := &PlayService{
		data:      data,
		sessionID: uuid.NewString(),
		intn:      rand.IntN,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = log.WithFields(logrus.Fields{"service": "play", "session_id": s.sessionID})
	return s
}

// SessionID возвращает идентификатор игровой сессии
func (s *PlayService) SessionID() string {
	return s.sessionID
}

// NextQuestion выбирает случайный вопрос из выбранных тем и возвращает его полностью загруженным.
// Ответы загружаются только для выбранного вопроса; вопросы без ответов пропускаются.
func (s *PlayService) NextQuestion(sel entity.ThemeSelection) (*entity.Question, error) {
	candidates, err := s.data.QuestionsFor(sel)
	if err != nil {
		return nil, err
	}

	for len(candidates) > 0 {
		i := s.intn(len(candidates))
		question, err := s.data.GetFullQuestionByID(candidates[i].ID)
		if err != nil {
			return nil, err
		}
		if question.Answers.Len() > 0 {
			s.log.WithFields(logrus.Fields{"question_id": question.ID, "selection": sel.String()}).Debug("question picked")
			return question, nil
		}

		s.log.WithField("question_id", question.ID).Debug("question without answers skipped")
		candidates = append(candidates[:i], candidates[i+1:]...)
	}
	return nil, ErrNoQuestions
}

// SubmitAnswer проверяет выбранные ответы. Ответ верен, только если каждый вариант
// выбран ровно тогда, когда он помечен как правильный. Нужно выбрать хотя бы один вариант.
func (s *PlayService) SubmitAnswer(question *entity.Question, chosenIDs []int64) (*AnswerResult, error) {
	if question == nil || question.ID <= 0 {
		return nil, ErrNoQuestionSelected
	}
	if len(chosenIDs) == 0 {
		return nil, ErrNoSelection
	}

	chosen := make(map[int64]bool, len(chosenIDs))
	for _, id := range chosenIDs {
		if _, ok := question.Answers.Get(id); !ok {
			return nil, ErrUnknownAnswer
		}
		chosen[id] = true
	}

	correct := true
	for _, a := range question.Answers.All() {
		if chosen[a.ID] != a.IsCorrect {
			correct = false
			break
		}
	}

	stat := entity.NewQuizStatistic(question.ID, correct, s.now())
	if err := s.data.RecordStatistic(stat); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"question_id": question.ID, "correct": correct}).Info("answer recorded")
	return &AnswerResult{
		Correct:        correct,
		CorrectAnswers: question.CorrectAnswers(),
		Statistic:      stat,
	}, nil
}
