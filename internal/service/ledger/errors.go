package ledger

import "errors"

var (
	// ErrTransient возвращается при сетевых ошибках и таймаутах; кэш при этом не меняется
	ErrTransient = errors.New("ledger: backend temporarily unavailable")

	// ErrAppointmentNotFound возвращается, когда backend не нашёл бронирование
	ErrAppointmentNotFound = errors.New("ledger: appointment not found")

	// ErrCannotCancel возвращается, когда backend отказался отменять бронирование
	ErrCannotCancel = errors.New("ledger: appointment cannot be cancelled")

	// ErrInternal возвращается при прочих ошибках
	ErrInternal = errors.New("ledger: internal error")
)
