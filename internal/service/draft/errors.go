package draft

import "errors"

var (
	// ErrRestore возвращается, когда сохранённый черновик не удалось прочитать
	ErrRestore = errors.New("draft: failed to restore snapshot")
)
