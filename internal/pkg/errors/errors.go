package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись не найдена (или UPDATE/DELETE не затронул ни одной строки).
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для нарушений бизнес-правил (валидаторы, проверки DataManager).
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется при нарушении уникальности в хранилище.
	ErrConflict = errors.New("resource state conflict")

	// ErrInvalidReference используется, когда запись ссылается на несуществующего владельца
	// (нарушение внешнего ключа или несохранённый родитель).
	ErrInvalidReference = errors.New("invalid reference")

	// ErrStore оборачивает любые прочие ошибки хранилища (соединение, синтаксис, драйвер).
	// Исходная ошибка драйвера наружу не пробрасывается.
	ErrStore = errors.New("store operation failed")
)
