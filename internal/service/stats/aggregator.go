// Package stats группирует записи статистики в показатели точности по дням,
// неделям и темам. Пакет не зависит от хранилища.
package stats

import (
	"fmt"
	"time"

	"github.com/yourusername/quiz-store/internal/domain/entity"
)

// DayLayout - формат метки дня
const DayLayout = "2006-01-02"

// Bucket - показатель точности одной группы
type Bucket struct {
	Label    string
	Correct  int
	Total    int
	Accuracy float64
}

// Buckets - группы в порядке первого появления метки
type Buckets []Bucket

// AsMap возвращает отображение метка -> процент правильных ответов
func (b Buckets) AsMap() map[string]float64 {
	out := make(map[string]float64, len(b))
	for _, bucket := range b {
		out[bucket.Label] = bucket.Accuracy
	}
	return out
}

// Labels возвращает метки в порядке групп
func (b Buckets) Labels() []string {
	out := make([]string, len(b))
	for i, bucket := range b {
		out[i] = bucket.Label
	}
	return out
}

// Summary - итог по набору записей
type Summary struct {
	Correct  int
	Total    int
	Accuracy float64
}

func (s Summary) String() string {
	return fmt.Sprintf("Accuracy: %.1f%% (%d/%d)", s.Accuracy, s.Correct, s.Total)
}

// DayCount - число правильных и неправильных ответов за один день недели
type DayCount struct {
	Date    time.Time
	Label   string
	Correct int
	Wrong   int
}

// Source - данные, нужные для подсчета точности по темам
type Source interface {
	ResolveThemes(sel entity.ThemeSelection) ([]entity.Theme, error)
	FindQuestionsByTheme(theme *entity.Theme) ([]entity.Question, error)
	FindStatisticsByQuestionID(questionID int64) ([]entity.QuizStatistic, error)
}

// Aggregator считает точность ответов по группам
type Aggregator struct {
	loc  *time.Location
	rule WeekRule
}

// Option настраивает Aggregator
type Option func(*Aggregator)

// WithLocation задает часовой пояс, в котором определяются дни и недели
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithWeekRule задает правило нумерации недель
func WithWeekRule(rule WeekRule) Option {
	return func(a *Aggregator) {
		if rule != nil {
			a.rule = rule
		}
	}
}

// NewAggregator создает Aggregator. По умолчанию time.Local и ISOWeekRule.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{loc: time.Local, rule: ISOWeekRule}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location возвращает часовой пояс агрегатора
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// DailyAccuracy группирует записи по календарной дате
func (a *Aggregator) DailyAccuracy(stats []entity.QuizStatistic) Buckets {
	return a.group(stats, func(t time.Time) string {
		return t.Format(DayLayout)
	})
}

// WeeklyAccuracy группирует записи по неделе, метка "<год>-KW<неделя>"
func (a *Aggregator) WeeklyAccuracy(stats []entity.QuizStatistic) Buckets {
	return a.group(stats, func(t time.Time) string {
		return WeekLabel(a.rule.Week(t))
	})
}

// ThemeAccuracy считает точность по каждой теме, суммируя все ее вопросы.
// Тема без записей получает 0.
func (a *Aggregator) ThemeAccuracy(themes []entity.Theme, src Source) (Buckets, error) {
	out := make(Buckets, 0, len(themes))
	for i := range themes {
		theme := &themes[i]
		questions, err := src.FindQuestionsByTheme(theme)
		if err != nil {
			return nil, err
		}

		var correct, total int
		for _, q := range questions {
			stats, err := src.FindStatisticsByQuestionID(q.ID)
			if err != nil {
				return nil, err
			}
			c, t := count(stats)
			correct += c
			total += t
		}
		out = append(out, Bucket{Label: theme.Title, Correct: correct, Total: total, Accuracy: Accuracy(correct, total)})
	}
	return out, nil
}

// ThemeAccuracyFor считает точность для выбора темы; "все темы" раскрывается в реальные темы
func (a *Aggregator) ThemeAccuracyFor(sel entity.ThemeSelection, src Source) (Buckets, error) {
	themes, err := src.ResolveThemes(sel)
	if err != nil {
		return nil, err
	}
	return a.ThemeAccuracy(themes, src)
}

// WeekBreakdown раскладывает записи одной недели по семи дням, начиная с первого дня недели
func (a *Aggregator) WeekBreakdown(stats []entity.QuizStatistic, label string) ([]DayCount, error) {
	year, week, err := ParseWeekLabel(label)
	if err != nil {
		return nil, err
	}

	start := a.rule.WeekStart(year, week, a.loc)
	days := make([]DayCount, 7)
	index := make(map[string]int, 7)
	for i := range days {
		d := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, a.loc)
		days[i] = DayCount{Date: d, Label: d.Format(DayLayout)}
		index[days[i].Label] = i
	}

	for _, s := range stats {
		i, ok := index[s.Date.In(a.loc).Format(DayLayout)]
		if !ok {
			continue
		}
		if s.Correct {
			days[i].Correct++
		} else {
			days[i].Wrong++
		}
	}
	return days, nil
}

// Summarize возвращает общий итог по записям
func Summarize(stats []entity.QuizStatistic) Summary {
	correct, total := count(stats)
	return Summary{Correct: correct, Total: total, Accuracy: Accuracy(correct, total)}
}

// Accuracy возвращает процент правильных ответов; для пустого набора 0
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}

func (a *Aggregator) group(stats []entity.QuizStatistic, key func(time.Time) string) Buckets {
	var out Buckets
	index := make(map[string]int)
	for _, s := range stats {
		label := key(s.Date.In(a.loc))
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, Bucket{Label: label})
		}
		out[i].Total++
		if s.Correct {
			out[i].Correct++
		}
	}
	for i := range out {
		out[i].Accuracy = Accuracy(out[i].Correct, out[i].Total)
	}
	return out
}

func count(stats []entity.QuizStatistic) (correct, total int) {
	for _, s := range stats {
		total++
		if s.Correct {
			correct++
		}
	}
	return correct, total
}
