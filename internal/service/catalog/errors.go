package catalog

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("catalog: business not found")

	// ErrStaffNotFound возвращается, когда мастер не найден среди активных сотрудников бизнеса
	ErrStaffNotFound = errors.New("catalog: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у бизнеса
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrBackend возвращается при ошибках обращения к backend
	ErrBackend = errors.New("catalog: backend error")
)
