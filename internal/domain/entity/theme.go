package entity

import "sort"

// UnsavedID - идентификатор сущности, которая ещё ни разу не сохранялась.
// Любой id <= 0 трактуется как "не сохранено"; хранилище назначает положительный id при первой вставке.
const UnsavedID int64 = -1

// Theme представляет тему (категорию) викторины
type Theme struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"size:255;not null" json:"title"`
	Text  string `gorm:"type:text;not null" json:"text"`

	// questions - вопросы темы по id; повторное добавление с тем же id заменяет значение
	questions map[int64]*Question
}

// TableName определяет имя таблицы для GORM
func (Theme) TableName() string {
	return "theme"
}

// NewTheme создает новую несохранённую тему
func NewTheme(title, text string) *Theme {
	return &Theme{ID: UnsavedID, Title: title, Text: text}
}

// IsPersisted сообщает, была ли тема сохранена в хранилище
func (t *Theme) IsPersisted() bool {
	return t != nil && t.ID > 0
}

// Equal сравнивает темы только по id
func (t *Theme) Equal(other *Theme) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID
}

// AddQuestion добавляет вопрос в тему. Вопросы без id игнорируются,
// вопрос с уже существующим id заменяет прежний.
func (t *Theme) AddQuestion(q *Question) {
	if q == nil || q.ID <= 0 {
		return
	}
	if t.questions == nil {
		t.questions = make(map[int64]*Question)
	}
	t.questions[q.ID] = q
}

// RemoveQuestionByID удаляет вопрос из темы, возвращает false если его не было
func (t *Theme) RemoveQuestionByID(id int64) bool {
	if _, ok := t.questions[id]; !ok {
		return false
	}
	delete(t.questions, id)
	return true
}

// ClearQuestions очищает содержимое темы
func (t *Theme) ClearQuestions() {
	t.questions = nil
}

// Questions возвращает вопросы темы, отсортированные по id
func (t *Theme) Questions() []*Question {
	out := make([]*Question, 0, len(t.questions))
	for _, q := range t.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// QuestionCount возвращает количество загруженных вопросов
func (t *Theme) QuestionCount() int {
	return len(t.questions)
}

func (t *Theme) String() string {
	return t.Title
}
