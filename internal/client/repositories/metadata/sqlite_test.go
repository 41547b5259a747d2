package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // one shared in-memory database
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)

	return db
}

func TestGetSet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	got, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, "", got, "absent key reads as empty")

	require.NoError(t, r.Set(ctx, "k", "v1"))
	require.NoError(t, r.Set(ctx, "k", "v2"))

	got, err = r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got, "set upserts")
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v"))
	require.NoError(t, r.Delete(ctx, "k"))

	got, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	// deleting a missing key is not an error
	require.NoError(t, r.Delete(ctx, "k"))
}

func TestIncrementCounter_StartsAtOneAndIsMonotonic(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := r.IncrementCounter(ctx, KeyLastLocalInvoiceNumber)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	stored, err := r.Get(ctx, KeyLastLocalInvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, "5", stored, "counter is durable, not in-process state")
}

func TestIncrementCounter_IndependentKeys(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.IncrementCounter(ctx, "a")
	require.NoError(t, err)

	got, err := r.IncrementCounter(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
