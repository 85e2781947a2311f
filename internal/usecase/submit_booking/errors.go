package submit_booking

import (
	"errors"
	"strings"
)

var (
	// ErrValidation возвращается, когда в черновике не хватает обязательных полей; в сеть ничего не уходит
	ErrValidation = errors.New("submit_booking: draft is incomplete")

	// ErrCrossesMidnight возвращается, когда бронирование закончилось бы в 24:00 или позже
	ErrCrossesMidnight = errors.New("submit_booking: booking would end after midnight")

	// ErrConflict возвращается, когда backend отклонил бронирование (например, слот уже занят)
	ErrConflict = errors.New("submit_booking: booking rejected by backend")

	// ErrTransient возвращается при сетевых ошибках и таймаутах
	ErrTransient = errors.New("submit_booking: backend temporarily unavailable")

	// ErrSubmissionInProgress возвращается при повторной отправке, пока первая ещё не завершилась
	ErrSubmissionInProgress = errors.New("submit_booking: submission already in progress")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// Поля черновика, которые упоминаются в ValidationError
const (
	FieldBusiness = "business"
	FieldStaff    = "staff"
	FieldServices = "services"
	FieldDate     = "date"
	FieldTime     = "time"
	FieldNotes    = "notes"
)

// ValidationError перечисляет недостающие или некорректные поля черновика.
// errors.Is(err, ErrValidation) всегда истинно.
type ValidationError struct {
	Fields []string
	Cause  error
}

func (e *ValidationError) Error() string {
	msg := ErrValidation.Error() + ": invalid fields: " + strings.Join(e.Fields, ", ")
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}
