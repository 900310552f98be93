package service

import (
	"fmt"

	apperrors "github.com/yourusername/quiz-store/internal/pkg/errors"
)

// Ошибки сервисов
var (
	ErrNilTheme           = fmt.Errorf("%w: theme is nil", apperrors.ErrValidation)
	ErrNilQuestion        = fmt.Errorf("%w: question is nil", apperrors.ErrValidation)
	ErrNilStatistic       = fmt.Errorf("%w: statistic is nil", apperrors.ErrValidation)
	ErrNoValidTheme       = fmt.Errorf("%w: please select a valid theme before saving the question", apperrors.ErrValidation)
	ErrNoQuestionSelected = fmt.Errorf("%w: no question selected", apperrors.ErrValidation)
	ErrNoSelection        = fmt.Errorf("%w: please select at least one answer", apperrors.ErrValidation)
	ErrUnknownAnswer      = fmt.Errorf("%w: answer does not belong to the question", apperrors.ErrValidation)

	// ErrNoQuestions возвращается, когда в выбранных темах нет ни одного вопроса с ответами
	ErrNoQuestions = fmt.Errorf("%w: no questions available", apperrors.ErrNotFound)
)
