package entity

import "encoding/json"

// Answer представляет вариант ответа на вопрос.
// Связь с вопросом хранится только как QuestionID и восстанавливается при гидрации.
type Answer struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID int64  `gorm:"column:question_id;not null;index" json:"question_id"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"column:is_correct;not null" json:"is_correct"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answer"
}

// NewAnswer создает несохранённый ответ
func NewAnswer(text string, correct bool) *Answer {
	return &Answer{ID: UnsavedID, Text: text, IsCorrect: correct}
}

func (a *Answer) String() string {
	return a.Text
}

// AnswerSet - упорядоченный по вставке набор ответов с ключом по id.
// Ответ с уже существующим положительным id заменяет прежний на его месте.
// Несохранённые ответы (id <= 0) никогда не конфликтуют между собой.
type AnswerSet struct {
	items []*Answer
}

// Add добавляет ответ в набор
func (s *AnswerSet) Add(a *Answer) {
	if a == nil {
		return
	}
	if a.ID > 0 {
		for i, existing := range s.items {
			if existing.ID == a.ID {
				s.items[i] = a
				return
			}
		}
	}
	s.items = append(s.items, a)
}

// Replace заменяет содержимое набора (clear + add)
func (s *AnswerSet) Replace(answers []*Answer) {
	s.Clear()
	for _, a := range answers {
		s.Add(a)
	}
}

// Clear очищает набор
func (s *AnswerSet) Clear() {
	s.items = nil
}

// Len возвращает количество ответов
func (s *AnswerSet) Len() int {
	return len(s.items)
}

// All возвращает копию списка ответов в порядке вставки
func (s *AnswerSet) All() []*Answer {
	out := make([]*Answer, len(s.items))
	copy(out, s.items)
	return out
}

// Get возвращает ответ по id
func (s *AnswerSet) Get(id int64) (*Answer, bool) {
	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// MarshalJSON сериализует набор как JSON-массив
func (s AnswerSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON восстанавливает набор из JSON-массива
func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var answers []*Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return err
	}
	s.Replace(answers)
	return nil
}
