package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	snapshot := newTestSnapshot()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO booking_drafts (draft_key,schema_version,payload) VALUES ($1,$2,$3) ON CONFLICT (draft_key) DO UPDATE SET",
	)).
		WithArgs("booking-draft:u1", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), "booking-draft:u1", snapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	snapshot := newTestSnapshot()
	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT schema_version, payload FROM booking_drafts WHERE draft_key = $1",
	)).
		WithArgs("booking-draft:u1").
		WillReturnRows(sqlmock.NewRows([]string{"schema_version", "payload"}).AddRow(1, payload))

	loaded, err := repo.Load(context.Background(), "booking-draft:u1")
	require.NoError(t, err)
	assert.Equal(t, snapshot, *loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Load_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT schema_version, payload FROM booking_drafts").
		WillReturnError(sql.ErrNoRows)

	_, err = NewRepository(db).Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRepository_Load_ColumnVersionWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT schema_version, payload FROM booking_drafts").
		WillReturnRows(sqlmock.NewRows([]string{"schema_version", "payload"}).
			AddRow(7, []byte(`{"services":[]}`)))

	loaded, err := NewRepository(db).Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.SchemaVersion)
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM booking_drafts WHERE draft_key = $1")).
		WithArgs("booking-draft:u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewRepository(db).Delete(context.Background(), "booking-draft:u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO booking_drafts").WillReturnError(errors.New("connection reset"))

	err = NewRepository(db).Save(context.Background(), "k", newTestSnapshot())
	assert.ErrorIs(t, err, ErrExecQuery)
}
