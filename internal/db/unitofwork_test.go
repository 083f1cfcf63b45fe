package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/mangala/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertConflict(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO conflicts (id, wedding_id, type, severity, title, created_at, updated_at)
		VALUES (?, 'w1', 'vendor', 'critical', 'double booked', 'now', 'now')`, id)
	return err
}

func conflictExists(t *testing.T, uow *db.SQLiteUnitOfWork, id string) bool {
	t.Helper()
	var n int
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM conflicts WHERE id = ?`, id).Scan(&n)
	})
	require.NoError(t, err)
	return n > 0
}

func TestWithinTx_Commits(t *testing.T) {
	uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertConflict(ctx, tx, "c1")
	})
	require.NoError(t, err)
	assert.True(t, conflictExists(t, uow, "c1"))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	uow := newUoW(t)
	boom := errors.New("boom")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertConflict(ctx, tx, "c2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, conflictExists(t, uow, "c2"))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertConflict(ctx, tx, "c3")
			panic("boom")
		})
	})
	assert.False(t, conflictExists(t, uow, "c3"))
}
