package domain

import (
	"errors"
	"sort"
	"strings"
)

// Базовая таксономия ошибок ядра. Все они восстановимы на границе запроса:
// обработчик возвращает форму с ошибками, процесс не падает.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// NonFieldKey — ключ для ошибок уровня всей записи (например, дубликат
// комбинации имя+фамилия+дата рождения).
const NonFieldKey = "non_field"

// FieldErrors — накопитель ошибок валидации: поле -> список сообщений.
// Ошибки собираются все сразу, без fail-fast по первому полю.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[f], ", "))
	}
	return b.String()
}

// ValidationError — результат неуспешной валидации записи.
// conflict=true, когда среди нарушений есть дубликаты уникальных данных:
// тогда errors.Is(err, ErrConflict) возвращает true.
type ValidationError struct {
	Fields   FieldErrors
	conflict bool
}

func NewValidationError(fields FieldErrors, conflict bool) *ValidationError {
	return &ValidationError{Fields: fields, conflict: conflict}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrConflict && e.conflict
}
