package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/quiz-store/internal/domain/entity"
	"github.com/yourusername/quiz-store/internal/service"
	"github.com/yourusername/quiz-store/internal/validation"
)

type seedAnswer struct {
	text    string
	correct bool
}

type seedQuestion struct {
	title, text string
	answers     []seedAnswer
}

type seedTheme struct {
	title, text string
	questions   []seedQuestion
}

var demoContent = []seedTheme{
	{
		title: "Capitals",
		text:  "Capitals of European countries",
		questions: []seedQuestion{
			{title: "France", text: "What is the capital of France?", answers: []seedAnswer{
				{"Paris", true}, {"Lyon", false}, {"Marseille", false},
			}},
			{title: "Germany", text: "What is the capital of Germany?", answers: []seedAnswer{
				{"Bonn", false}, {"Berlin", true}, {"Hamburg", false},
			}},
			{title: "Spain", text: "What is the capital of Spain?", answers: []seedAnswer{
				{"Madrid", true}, {"Barcelona", false},
			}},
		},
	},
	{
		title: "Rivers",
		text:  "Rivers and the cities on them",
		questions: []seedQuestion{
			{title: "Danube", text: "Which capitals lie on the Danube?", answers: []seedAnswer{
				{"Vienna", true}, {"Budapest", true}, {"Prague", false},
			}},
			{title: "Thames", text: "Which city does the Thames flow through?", answers: []seedAnswer{
				{"London", true}, {"Dublin", false},
			}},
		},
	},
}

// seed добавляет демонстрационные темы и разыгрывает случайные раунды для статистики.
// Уже существующие темы и вопросы пропускаются.
func (a *app) seed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	rounds := fs.Int("rounds", 20, "number of random rounds to play")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, st := range demoContent {
		if err := a.seedTheme(st); err != nil {
			return err
		}
	}

	play := service.NewPlayService(a.data, a.log)
	var correct int
	for i := 0; i < *rounds; i++ {
		q, err := play.NextQuestion(entity.AllThemes())
		if err != nil {
			return err
		}
		answers := q.Answers.All()
		chosen := []int64{answers[rand.IntN(len(answers))].ID}
		res, err := play.SubmitAnswer(q, chosen)
		if err != nil {
			return err
		}
		if res.Correct {
			correct++
		}
	}

	a.log.WithFields(logrus.Fields{
		"session_id": play.SessionID(),
		"rounds":     *rounds,
		"correct":    correct,
	}).Info("demo content seeded")
	return nil
}

func (a *app) seedTheme(st seedTheme) error {
	theme, err := a.findOrCreateTheme(st)
	if err != nil {
		return err
	}
	for _, sq := range st.questions {
		q := entity.NewQuestion(theme, sq.title, sq.text)
		for _, ans := range sq.answers {
			q.AddAnswer(entity.NewAnswer(ans.text, ans.correct))
		}

		if err := a.data.CheckQuestion(q, theme); err != nil {
			if errors.Is(err, validation.ErrQuestionDuplicateTitle) {
				continue
			}
			return fmt.Errorf("demo question %q: %w", sq.title, err)
		}
		if err := a.data.SaveQuestion(q); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) findOrCreateTheme(st seedTheme) (*entity.Theme, error) {
	err := a.data.CheckTheme(st.title, st.text, nil)
	if err == nil {
		theme := entity.NewTheme(st.title, st.text)
		if err := a.data.SaveTheme(theme); err != nil {
			return nil, err
		}
		return theme, nil
	}
	if !errors.Is(err, validation.ErrThemeDuplicateTitle) {
		return nil, fmt.Errorf("demo theme %q: %w", st.title, err)
	}

	sel, err := a.selection(st.title)
	if err != nil {
		return nil, err
	}
	return sel.Theme(), nil
}
