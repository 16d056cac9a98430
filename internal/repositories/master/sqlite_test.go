package master

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CloudTigerx/password-manager/internal/common"
	"github.com/CloudTigerx/password-manager/internal/models"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE master_auth (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  password_hash TEXT NOT NULL,
  salt TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestExists_EmptyAndAfterCreate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	ok, err := r.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Create(ctx, &models.MasterCredential{
		PasswordHash: "abcd",
		Salt:         "ef01",
		CreatedAt:    time.Now(),
	}))

	ok, err = r.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreate_SecondAttemptFails(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	first := &models.MasterCredential{PasswordHash: "h1", Salt: "s1", CreatedAt: time.Now()}
	require.NoError(t, r.Create(ctx, first))

	second := &models.MasterCredential{PasswordHash: "h2", Salt: "s2", CreatedAt: time.Now()}
	err := r.Create(ctx, second)
	require.ErrorIs(t, err, common.ErrAlreadyExists)

	// the original record must be untouched
	loaded, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "h1", loaded.PasswordHash)
	assert.Equal(t, "s1", loaded.Salt)
}

func TestLoad_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, r.Create(ctx, &models.MasterCredential{
		PasswordHash: "feedface",
		Salt:         "deadbeef",
		CreatedAt:    created,
	}))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "feedface", got.PasswordHash)
	assert.Equal(t, "deadbeef", got.Salt)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestLoad_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
