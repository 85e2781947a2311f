package draft

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// SnapshotStore хранилище сохраняемой части черновика
type SnapshotStore interface {
	Load(ctx context.Context, key string) (*domain.DraftSnapshot, error)
	Save(ctx context.Context, key string, snapshot domain.DraftSnapshot) error
	Delete(ctx context.Context, key string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
