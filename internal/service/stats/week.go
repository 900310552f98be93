package stats

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekRule определяет нумерацию недель: какой день начинает неделю
// и какая неделя считается первой в году.
type WeekRule interface {
	// Week возвращает год и номер недели для даты (дата уже в нужной зоне)
	Week(t time.Time) (year, week int)
	// WeekStart возвращает полночь первого дня недели в зоне loc
	WeekStart(year, week int, loc *time.Location) time.Time
}

// ISOWeekRule - нумерация ISO-8601: неделя с понедельника, год недели может
// отличаться от календарного у дат на стыке лет.
var ISOWeekRule WeekRule = isoWeekRule{}

type isoWeekRule struct{}

func (isoWeekRule) Week(t time.Time) (int, int) {
	return t.ISOWeek()
}

func (isoWeekRule) WeekStart(year, week int, loc *time.Location) time.Time {
	// неделя 1 всегда содержит 4 января
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	back := (int(jan4.Weekday()) + 6) % 7
	return time.Date(year, time.January, 4-back+(week-1)*7, 0, 0, 0, 0, loc)
}

// LocaleWeekRule - локальная нумерация недель внутри календарного года.
// FirstDay задает первый день недели, MinDays - минимальное число дней
// первой недели в году. Даты до первой недели попадают в неделю 0.
type LocaleWeekRule struct {
	FirstDay time.Weekday
	MinDays  int
}

// Часто используемые локальные правила
var (
	GermanWeekRule = LocaleWeekRule{FirstDay: time.Monday, MinDays: 4}
	USWeekRule     = LocaleWeekRule{FirstDay: time.Sunday, MinDays: 1}
)

func (r LocaleWeekRule) Week(t time.Time) (int, int) {
	return t.Year(), r.weekOfYear(t.YearDay(), r.localDay(t.Weekday()))
}

func (r LocaleWeekRule) WeekStart(year, week int, loc *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	dow := r.localDay(jan1.Weekday())
	firstWeek := r.weekOfYear(1, dow)
	return time.Date(year, time.January, 1-(dow-1)+(week-firstWeek)*7, 0, 0, 0, 0, loc)
}

// localDay возвращает номер дня внутри недели: 1 для FirstDay, 7 для последнего
func (r LocaleWeekRule) localDay(wd time.Weekday) int {
	return floorMod(int(wd)-int(r.FirstDay), 7) + 1
}

func (r LocaleWeekRule) weekOfYear(dayOfYear, dow int) int {
	minDays := r.MinDays
	if minDays < 1 {
		minDays = 1
	}
	if minDays > 7 {
		minDays = 7
	}

	weekStart := floorMod(dayOfYear-dow, 7)
	offset := -weekStart
	if weekStart+1 > minDays {
		offset = 7 - weekStart
	}
	return (7 + offset + (dayOfYear - 1)) / 7
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// WeekLabel форматирует метку недели "<год>-KW<неделя>"
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%d-KW%d", year, week)
}

// ParseWeekLabel разбирает метку, созданную WeekLabel
func ParseWeekLabel(label string) (year, week int, err error) {
	y, w, ok := strings.Cut(label, "-KW")
	if !ok {
		return 0, 0, fmt.Errorf("invalid week label %q", label)
	}
	if year, err = strconv.Atoi(y); err != nil {
		return 0, 0, fmt.Errorf("invalid year in week label %q: %w", label, err)
	}
	if week, err = strconv.Atoi(w); err != nil {
		return 0, 0, fmt.Errorf("invalid week in week label %q: %w", label, err)
	}
	if week < 0 || week > 54 {
		return 0, 0, fmt.Errorf("week out of range in label %q", label)
	}
	return year, week, nil
}
