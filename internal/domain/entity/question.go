package entity

// Question представляет вопрос викторины
type Question struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ThemeID int64  `gorm:"column:theme_id;not null;index" json:"theme_id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Text    string `gorm:"type:text;not null" json:"text"`

	// Theme - гидрированная тема-владелец. После QuestionRepository.GetByID содержит только id,
	// полную тему подгружает DataManager.
	Theme *Theme `gorm:"-" json:"theme,omitempty"`

	// Answers - варианты ответа в порядке добавления
	Answers AnswerSet `gorm:"-" json:"answers"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "question"
}

// NewQuestion создает несохранённый вопрос, привязанный к теме
func NewQuestion(theme *Theme, title, text string) *Question {
	q := &Question{ID: UnsavedID, Title: title, Text: text}
	q.SetTheme(theme)
	return q
}

// IsPersisted сообщает, был ли вопрос сохранён
func (q *Question) IsPersisted() bool {
	return q != nil && q.ID > 0
}

// Equal сравнивает вопросы только по id
func (q *Question) Equal(other *Question) bool {
	if q == nil || other == nil {
		return q == other
	}
	return q.ID == other.ID
}

// SetTheme устанавливает тему и синхронизирует ThemeID
func (q *Question) SetTheme(theme *Theme) {
	q.Theme = theme
	if theme != nil {
		q.ThemeID = theme.ID
	}
}

// ThemeRef возвращает id темы: из гидрированной темы, если она есть, иначе ThemeID
func (q *Question) ThemeRef() int64 {
	if q.Theme != nil {
		return q.Theme.ID
	}
	return q.ThemeID
}

// HasThemeReference сообщает, ссылается ли вопрос хоть на какую-то тему
func (q *Question) HasThemeReference() bool {
	return q.Theme != nil || q.ThemeID > 0
}

// AddAnswer добавляет ответ (см. AnswerSet.Add)
func (q *Question) AddAnswer(a *Answer) {
	q.Answers.Add(a)
}

// CorrectAnswers возвращает только правильные ответы
func (q *Question) CorrectAnswers() []*Answer {
	var out []*Answer
	for _, a := range q.Answers.All() {
		if a.IsCorrect {
			out = append(out, a)
		}
	}
	return out
}

// HasCorrectAnswer проверяет, отмечен ли хотя бы один ответ как правильный
func (q *Question) HasCorrectAnswer() bool {
	return len(q.CorrectAnswers()) > 0
}

func (q *Question) String() string {
	return q.Title
}
