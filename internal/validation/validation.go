// Package validation содержит чистые проверки бизнес-правил для тем и вопросов.
// Каждая функция возвращает nil либо первую нарушенную проверку.
package validation

import (
	"fmt"
	"strings"

	"github.com/yourusername/quiz-store/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-store/internal/pkg/errors"
)

// Ошибки валидации темы
var (
	ErrThemeNoTitle        = fmt.Errorf("%w: please enter a title", apperrors.ErrValidation)
	ErrThemeNoDescription  = fmt.Errorf("%w: please enter a description", apperrors.ErrValidation)
	ErrThemeDuplicateTitle = fmt.Errorf("%w: a theme with this title already exists", apperrors.ErrValidation)
)

// Ошибки валидации вопроса
var (
	ErrQuestionNoTheme        = fmt.Errorf("%w: please select a theme", apperrors.ErrValidation)
	ErrQuestionInvalid        = fmt.Errorf("%w: invalid question or theme", apperrors.ErrValidation)
	ErrQuestionNoTitle        = fmt.Errorf("%w: please enter a title", apperrors.ErrValidation)
	ErrQuestionNoText         = fmt.Errorf("%w: please enter the question text", apperrors.ErrValidation)
	ErrQuestionNoAnswer       = fmt.Errorf("%w: please enter at least one answer", apperrors.ErrValidation)
	ErrQuestionNoCorrect      = fmt.Errorf("%w: please mark at least one answer as correct", apperrors.ErrValidation)
	ErrQuestionDuplicateTitle = fmt.Errorf("%w: another question with this title already exists in the selected theme", apperrors.ErrValidation)
)

// ValidateTheme проверяет заголовок и описание темы и уникальность заголовка.
// exclude - редактируемая тема, которая не участвует в проверке на дубликат (сравнение по id).
func ValidateTheme(title, text string, allThemes []entity.Theme, exclude *entity.Theme) error {
	if isBlank(title) {
		return ErrThemeNoTitle
	}
	if isBlank(text) {
		return ErrThemeNoDescription
	}

	normalized := normalize(title)
	for i := range allThemes {
		other := &allThemes[i]
		if isExcluded(other.ID, excludeThemeID(exclude)) {
			continue
		}
		if normalize(other.Title) == normalized {
			return ErrThemeDuplicateTitle
		}
	}
	return nil
}

// ValidateQuestion проверяет вопрос в порядке: тема, ссылка на тему, заголовок, текст,
// наличие ответов, наличие правильного ответа, уникальность заголовка внутри темы.
func ValidateQuestion(question *entity.Question, theme *entity.Theme, exclude *entity.Question) error {
	if theme == nil {
		return ErrQuestionNoTheme
	}
	if question == nil || !question.HasThemeReference() {
		return ErrQuestionInvalid
	}
	if isBlank(question.Title) {
		return ErrQuestionNoTitle
	}
	if isBlank(question.Text) {
		return ErrQuestionNoText
	}
	if question.Answers.Len() == 0 {
		return ErrQuestionNoAnswer
	}
	if !question.HasCorrectAnswer() {
		return ErrQuestionNoCorrect
	}

	var excludeID int64
	if exclude != nil {
		excludeID = exclude.ID
	}
	normalized := normalize(question.Title)
	for _, other := range theme.Questions() {
		if isExcluded(other.ID, excludeID) {
			continue
		}
		if normalize(other.Title) == normalized {
			return ErrQuestionDuplicateTitle
		}
	}
	return nil
}

func excludeThemeID(t *entity.Theme) int64 {
	if t == nil {
		return 0
	}
	return t.ID
}

// исключение действует только для сохранённых сущностей
func isExcluded(id, excludeID int64) bool {
	return excludeID > 0 && id == excludeID
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
