package draft

import "errors"

var (
	// ErrSnapshotNotFound возвращается, когда для ключа нет сохранённого черновика
	ErrSnapshotNotFound = errors.New("draft.storage: snapshot not found")

	// ErrEncode возвращается при ошибке сериализации снимка
	ErrEncode = errors.New("draft.storage: failed to encode snapshot")

	// ErrDecode возвращается при ошибке десериализации снимка
	ErrDecode = errors.New("draft.storage: failed to decode snapshot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("draft.storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса к хранилищу
	ErrExecQuery = errors.New("draft.storage: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("draft.storage: failed to scan row")

	// ErrWriterClosed возвращается при записи в остановленный AsyncWriter
	ErrWriterClosed = errors.New("draft.storage: async writer is closed")

	// ErrQueueFull возвращается, когда слишком много ключей ждут записи
	ErrQueueFull = errors.New("draft.storage: async writer queue is full")
)
