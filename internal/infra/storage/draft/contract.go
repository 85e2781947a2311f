package draft

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// Store общий контракт хранилищ снимков (redis, postgres)
type Store interface {
	Load(ctx context.Context, key string) (*domain.DraftSnapshot, error)
	Save(ctx context.Context, key string, snapshot domain.DraftSnapshot) error
	Delete(ctx context.Context, key string) error
}

// DBExecutor интерфейс для выполнения запросов (*sql.DB, *sql.Tx)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Metrics счётчики операций записи
type Metrics interface {
	IncSnapshotWrite(op, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
