package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme_AddQuestion_IgnoresUnsaved(t *testing.T) {
	// Arrange
	theme := NewTheme("Capitals", "European capitals")

	// Act
	theme.AddQuestion(NewQuestion(theme, "Q1", "text"))

	// Assert
	assert.Equal(t, 0, theme.QuestionCount(), "Вопрос с id -1 не должен попадать в тему")
}

func TestTheme_AddQuestion_OverwritesSameID(t *testing.T) {
	theme := &Theme{ID: 1}
	theme.AddQuestion(&Question{ID: 4, Title: "old"})
	theme.AddQuestion(&Question{ID: 2, Title: "second"})
	theme.AddQuestion(&Question{ID: 4, Title: "new"})

	questions := theme.Questions()
	require.Len(t, questions, 2)
	assert.Equal(t, int64(2), questions[0].ID, "Вопросы должны быть отсортированы по id")
	assert.Equal(t, "new", questions[1].Title)
}

func TestTheme_RemoveQuestionByID(t *testing.T) {
	theme := &Theme{ID: 1}
	theme.AddQuestion(&Question{ID: 4})

	assert.True(t, theme.RemoveQuestionByID(4))
	assert.False(t, theme.RemoveQuestionByID(4))
	assert.Equal(t, 0, theme.QuestionCount())
}

func TestTheme_IsPersistedAndEqual(t *testing.T) {
	unsaved := NewTheme("A", "B")
	assert.False(t, unsaved.IsPersisted())

	a := &Theme{ID: 3, Title: "A"}
	b := &Theme{ID: 3, Title: "other"}
	assert.True(t, a.IsPersisted())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(unsaved))

	var nilTheme *Theme
	assert.False(t, nilTheme.IsPersisted())
	assert.True(t, nilTheme.Equal(nil))
}

func TestSelections(t *testing.T) {
	theme := &Theme{ID: 1, Title: "Capitals"}
	question := &Question{ID: 2, Title: "Q1"}

	all := AllThemes()
	assert.True(t, all.IsAll())
	assert.Nil(t, all.Theme())
	assert.Equal(t, "All Themes", all.String())

	specific := SpecificTheme(theme)
	assert.False(t, specific.IsAll())
	assert.Same(t, theme, specific.Theme())
	assert.Equal(t, "Capitals", specific.String())

	// структурное сравнение, без идентичности объекта
	assert.Equal(t, AllThemes(), AllThemes())
	assert.Equal(t, AllQuestions(), AllQuestions())

	q := SpecificQuestion(question)
	assert.False(t, q.IsAll())
	assert.Same(t, question, q.Question())
	assert.Equal(t, "All Questions", AllQuestions().String())
}
