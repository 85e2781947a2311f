package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/psqlbuilder"
)

const tableName = "booking_drafts"

// Repository хранит снимки черновиков в PostgreSQL (таблица booking_drafts)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черновиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save выполняет upsert снимка по draft_key
func (r *Repository) Save(ctx context.Context, key string, snapshot domain.DraftSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("draft_key", "schema_version", "payload").
		Values(key, snapshot.SchemaVersion, payload).
		Suffix("ON CONFLICT (draft_key) DO UPDATE SET " +
			"schema_version = EXCLUDED.schema_version, " +
			"payload = EXCLUDED.payload, " +
			"updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Load читает снимок по draft_key
func (r *Repository) Load(ctx context.Context, key string) (*domain.DraftSnapshot, error) {
	query, args, err := psqlbuilder.Select("schema_version", "payload").
		From(tableName).
		Where(squirrel.Eq{"draft_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var (
		version int
		payload []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - scan snapshot: %v", ErrScanRow, err)
	}

	var snapshot domain.DraftSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: Load - unmarshal payload: %v", ErrDecode, err)
	}
	// Колонка авторитетна: payload мог быть записан старой версией без поля
	snapshot.SchemaVersion = version

	return &snapshot, nil
}

// Delete удаляет снимок по draft_key
func (r *Repository) Delete(ctx context.Context, key string) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"draft_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
