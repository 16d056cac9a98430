// Package storage opens the vault database, applies migrations, and wires
// the repositories together.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/CloudTigerx/password-manager/internal/migrations"
	"github.com/CloudTigerx/password-manager/internal/repositories/credentials"
	"github.com/CloudTigerx/password-manager/internal/repositories/master"
)

// Store bundles the open database handle and the repositories bound to it.
// InstallID is a random identifier minted on first open of a vault file,
// useful for telling vaults apart in logs and support requests.
type Store struct {
	DB          *sql.DB
	Master      master.Repository
	Credentials credentials.Repository
	InstallID   string
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the vault database at dsn, migrates
// the schema, and returns the wired Store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	installID, err := ensureInstallID(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		DB:          db,
		Master:      master.NewSQLiteRepository(db),
		Credentials: credentials.NewSQLiteRepository(db),
		InstallID:   installID,
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}

// ensureInstallID returns the vault's installation id, minting and storing
// a fresh one on first open. A concurrent opener may win the insert; the
// re-read makes both observe the same value.
func ensureInstallID(ctx context.Context, db *sql.DB) (string, error) {
	const query = `SELECT value FROM vault_meta WHERE key = 'install_id'`

	var id string
	err := db.QueryRowContext(ctx, query).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to read install id: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO vault_meta (key, value) VALUES ('install_id', ?)
		ON CONFLICT(key) DO NOTHING`, uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("failed to store install id: %w", err)
	}

	if err := db.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to re-read install id: %w", err)
	}
	return id, nil
}
