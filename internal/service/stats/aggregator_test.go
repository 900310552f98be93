package stats

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-store/internal/domain/entity"
)

func stat(questionID int64, correct bool, date time.Time) entity.QuizStatistic {
	return entity.QuizStatistic{QuestionID: questionID, Correct: correct, Date: date}
}

func TestDailyAccuracy(t *testing.T) {
	// Arrange
	agg := NewAggregator(WithLocation(time.UTC))
	day1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC)
	records := []entity.QuizStatistic{
		stat(1, true, day1),
		stat(1, false, day1.Add(time.Hour)),
		stat(2, true, day2),
		stat(2, true, day2),
	}

	// Act
	buckets := agg.DailyAccuracy(records)

	// Assert
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, buckets.Labels())
	assert.Equal(t, map[string]float64{"2024-03-01": 50.0, "2024-03-02": 100.0}, buckets.AsMap())
	assert.Equal(t, 2, buckets[0].Total)
	assert.Equal(t, 1, buckets[0].Correct)
}

func TestDailyAccuracy_UsesLocation(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	agg := NewAggregator(WithLocation(berlin))
	// 23:30 UTC 1 марта - уже 2 марта в зоне +01:00
	records := []entity.QuizStatistic{stat(1, true, time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC))}

	assert.Equal(t, []string{"2024-03-02"}, agg.DailyAccuracy(records).Labels())
}

func TestDailyAccuracy_CountsSumToN(t *testing.T) {
	agg := NewAggregator(WithLocation(time.UTC))
	r := rand.New(rand.NewPCG(1, 2))
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	records := make([]entity.QuizStatistic, 500)
	for i := range records {
		offset := time.Duration(r.IntN(60*24)) * time.Hour
		records[i] = stat(int64(i%7+1), r.IntN(2) == 0, base.Add(offset))
	}

	total := 0
	for _, b := range agg.DailyAccuracy(records) {
		total += b.Total
		assert.GreaterOrEqual(t, b.Accuracy, 0.0)
		assert.LessOrEqual(t, b.Accuracy, 100.0)
	}
	assert.Equal(t, len(records), total)
}

func TestWeeklyAccuracy_ISO(t *testing.T) {
	// Arrange: граница года - 31.12.2024 относится к 2025-W01 по ISO
	agg := NewAggregator(WithLocation(time.UTC))
	records := []entity.QuizStatistic{
		stat(1, true, time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC)),
		stat(1, false, time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)),
		stat(1, true, time.Date(2024, 12, 29, 10, 0, 0, 0, time.UTC)),
	}

	// Act
	buckets := agg.WeeklyAccuracy(records)

	// Assert
	assert.Equal(t, map[string]float64{"2025-KW1": 50.0, "2024-KW52": 100.0}, buckets.AsMap())
}

func TestWeeklyAccuracy_MembershipMatchesISOWeek(t *testing.T) {
	agg := NewAggregator(WithLocation(time.UTC))
	r := rand.New(rand.NewPCG(3, 4))
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 300; i++ {
		date := base.Add(time.Duration(r.IntN(365*5*24)) * time.Hour)
		year, week := date.ISOWeek()

		buckets := agg.WeeklyAccuracy([]entity.QuizStatistic{stat(1, true, date)})

		require.Len(t, buckets, 1)
		assert.Equal(t, WeekLabel(year, week), buckets[0].Label, "дата %s", date)
	}
}

func TestLocaleWeekRule(t *testing.T) {
	tests := []struct {
		name     string
		rule     LocaleWeekRule
		date     time.Time
		wantYear int
		wantWeek int
	}{
		{name: "de: суббота 1 января - неделя 0", rule: GermanWeekRule, date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), wantYear: 2022, wantWeek: 0},
		{name: "de: первый понедельник", rule: GermanWeekRule, date: time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC), wantYear: 2022, wantWeek: 1},
		{name: "de: 31 декабря остается в календарном году", rule: GermanWeekRule, date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), wantYear: 2024, wantWeek: 53},
		{name: "us: 1 января всегда неделя 1", rule: USWeekRule, date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), wantYear: 2022, wantWeek: 1},
		{name: "us: воскресенье начинает неделю 2", rule: USWeekRule, date: time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC), wantYear: 2022, wantWeek: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, week := tt.rule.Week(tt.date)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantWeek, week)
		})
	}
}

func TestWeekStart_InverseOfWeek(t *testing.T) {
	rules := map[string]WeekRule{"iso": ISOWeekRule, "de": GermanWeekRule, "us": USWeekRule}
	base := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, rule := range rules {
		t.Run(name, func(t *testing.T) {
			for d := 0; d < 365*3; d++ {
				date := base.AddDate(0, 0, d)
				year, week := rule.Week(date)
				start := rule.WeekStart(year, week, time.UTC)

				assert.False(t, date.Before(start), "%s: дата %s раньше начала недели %s", name, date, start)
				assert.True(t, date.Before(start.AddDate(0, 0, 7)), "%s: дата %s позже конца недели", name, date)
			}
		})
	}
}

func TestParseWeekLabel(t *testing.T) {
	year, week, err := ParseWeekLabel("2024-KW7")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 7, week)

	for _, bad := range []string{"2024-W7", "abcd-KW1", "2024-KWx", "2024-KW99"} {
		_, _, err := ParseWeekLabel(bad)
		assert.Error(t, err, bad)
	}
}

func TestWeekBreakdown(t *testing.T) {
	// Arrange: ISO-неделя 2024-W10 начинается в понедельник 4 марта
	agg := NewAggregator(WithLocation(time.UTC))
	records := []entity.QuizStatistic{
		stat(1, true, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)),
		stat(1, false, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)),
		stat(1, false, time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)),
		stat(1, true, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)), // следующая неделя
	}

	// Act
	days, err := agg.WeekBreakdown(records, "2024-KW10")

	// Assert
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, "2024-03-04", days[0].Label)
	assert.Equal(t, time.Monday, days[0].Date.Weekday())
	assert.Equal(t, 1, days[0].Correct)
	assert.Equal(t, 1, days[0].Wrong)
	assert.Equal(t, "2024-03-10", days[6].Label)
	assert.Equal(t, 1, days[6].Wrong)

	_, err = agg.WeekBreakdown(records, "bogus")
	assert.Error(t, err)
}

func TestWeekBreakdown_USRuleStartsSunday(t *testing.T) {
	agg := NewAggregator(WithLocation(time.UTC), WithWeekRule(USWeekRule))

	days, err := agg.WeekBreakdown(nil, "2022-KW2")

	require.NoError(t, err)
	assert.Equal(t, "2022-01-02", days[0].Label)
	assert.Equal(t, time.Sunday, days[0].Date.Weekday())
}

func TestSummarizeAndAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(0, 0))
	assert.InDelta(t, 66.666, Accuracy(2, 3), 0.01)

	now := time.Now()
	s := Summarize([]entity.QuizStatistic{stat(1, true, now), stat(1, false, now)})
	assert.Equal(t, Summary{Correct: 1, Total: 2, Accuracy: 50}, s)
	assert.Equal(t, "Accuracy: 50.0% (1/2)", s.String())
	assert.Equal(t, Summary{}, Summarize(nil))
}

// fakeSource - источник данных в памяти
type fakeSource struct {
	themes    []entity.Theme
	questions map[int64][]entity.Question
	stats     map[int64][]entity.QuizStatistic
	err       error
}

func (f fakeSource) ResolveThemes(sel entity.ThemeSelection) ([]entity.Theme, error) {
	if sel.IsAll() {
		return f.themes, nil
	}
	return []entity.Theme{*sel.Theme()}, nil
}

func (f fakeSource) FindQuestionsByTheme(theme *entity.Theme) ([]entity.Question, error) {
	return f.questions[theme.ID], f.err
}

func (f fakeSource) FindStatisticsByQuestionID(id int64) ([]entity.QuizStatistic, error) {
	return f.stats[id], nil
}

func TestThemeAccuracy(t *testing.T) {
	// Arrange
	now := time.Now()
	src := fakeSource{
		themes: []entity.Theme{{ID: 1, Title: "Capitals"}, {ID: 2, Title: "Rivers"}, {ID: 3, Title: "Empty"}},
		questions: map[int64][]entity.Question{
			1: {{ID: 10}, {ID: 11}},
			2: {{ID: 20}},
		},
		stats: map[int64][]entity.QuizStatistic{
			10: {stat(10, true, now), stat(10, true, now)},
			11: {stat(11, false, now), stat(11, true, now)},
			20: {stat(20, false, now)},
		},
	}
	agg := NewAggregator()

	// Act
	all, err := agg.ThemeAccuracyFor(entity.AllThemes(), src)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, []string{"Capitals", "Rivers", "Empty"}, all.Labels())
	assert.Equal(t, map[string]float64{"Capitals": 75.0, "Rivers": 0.0, "Empty": 0.0}, all.AsMap())
	assert.Equal(t, 4, all[0].Total)

	one, err := agg.ThemeAccuracyFor(entity.SpecificTheme(&src.themes[1]), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rivers"}, one.Labels())
}

func TestThemeAccuracy_PropagatesError(t *testing.T) {
	src := fakeSource{themes: []entity.Theme{{ID: 1, Title: "Capitals"}}, err: errors.New("store down")}

	_, err := NewAggregator().ThemeAccuracy(src.themes, src)

	assert.Error(t, err)
}
