package backend

import "errors"

var (
	// ErrNotFound возвращается, когда запрошенная запись не найдена (404)
	ErrNotFound = errors.New("backend client: record not found")

	// ErrConflict возвращается, когда backend отклонил запрос из-за конфликта (409), например слот уже занят
	ErrConflict = errors.New("backend client: conflict")

	// ErrRejected возвращается, когда backend отклонил запрос (прочие 4xx)
	ErrRejected = errors.New("backend client: request rejected")

	// ErrUnavailable возвращается при сетевых ошибках, таймаутах и 5xx
	ErrUnavailable = errors.New("backend client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от backend
	ErrInvalidResponse = errors.New("backend client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("backend client: internal error")
)
