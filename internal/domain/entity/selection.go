package entity

// ThemeSelection - выбор "все темы" либо конкретная тема.
// Сравнение структурное, без опоры на идентичность объекта-заглушки.
type ThemeSelection struct {
	all   bool
	theme *Theme
}

// AllThemes выбирает все реальные темы
func AllThemes() ThemeSelection {
	return ThemeSelection{all: true}
}

// SpecificTheme выбирает одну тему
func SpecificTheme(theme *Theme) ThemeSelection {
	return ThemeSelection{theme: theme}
}

// IsAll сообщает, выбраны ли все темы
func (s ThemeSelection) IsAll() bool {
	return s.all
}

// Theme возвращает выбранную тему (nil для AllThemes)
func (s ThemeSelection) Theme() *Theme {
	return s.theme
}

func (s ThemeSelection) String() string {
	if s.all {
		return "All Themes"
	}
	if s.theme == nil {
		return ""
	}
	return s.theme.Title
}

// QuestionSelection - выбор "все вопросы" либо конкретный вопрос
type QuestionSelection struct {
	all      bool
	question *Question
}

// AllQuestions выбирает все вопросы в рамках выбранных тем
func AllQuestions() QuestionSelection {
	return QuestionSelection{all: true}
}

// SpecificQuestion выбирает один вопрос
func SpecificQuestion(question *Question) QuestionSelection {
	return QuestionSelection{question: question}
}

// IsAll сообщает, выбраны ли все вопросы
func (s QuestionSelection) IsAll() bool {
	return s.all
}

// Question возвращает выбранный вопрос (nil для AllQuestions)
func (s QuestionSelection) Question() *Question {
	return s.question
}

func (s QuestionSelection) String() string {
	if s.all {
		return "All Questions"
	}
	if s.question == nil {
		return ""
	}
	return s.question.Title
}
