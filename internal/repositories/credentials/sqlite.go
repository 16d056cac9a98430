package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/CloudTigerx/password-manager/internal/common"
	"github.com/CloudTigerx/password-manager/internal/dbx"
	"github.com/CloudTigerx/password-manager/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.CredentialRecord) (int64, error) {
	query := `INSERT INTO passwords (title, username, encrypted_password, category, notes)
			VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rec.Title, rec.Username, rec.EncryptedPassword, rec.Category, rec.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert credential: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.CredentialRecord, error) {
	query := `SELECT id, title, username, encrypted_password, category, notes, last_accessed
			FROM passwords ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select credentials: %w", err)
	}
	defer rows.Close()

	var result []models.CredentialRecord
	for rows.Next() {
		item, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.CredentialRecord, error) {
	query := `SELECT id, title, username, encrypted_password, category, notes, last_accessed
			FROM passwords WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load credential %d: %w", id, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	// idempotent: zero rows affected is fine
	if _, err := r.db.ExecContext(ctx, `DELETE FROM passwords WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete credential %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) TouchLastAccessed(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE passwords SET last_accessed = ? WHERE id = ?`,
		at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to stamp last access for %d: %w", id, err)
	}
	return nil
}

// scanRecord reads one passwords row via the given scan function,
// converting nullable columns to pointers.
func scanRecord(scan func(dest ...any) error) (*models.CredentialRecord, error) {
	var (
		rec          models.CredentialRecord
		category     sql.NullString
		notes        sql.NullString
		lastAccessed sql.NullString
	)
	if err := scan(&rec.ID, &rec.Title, &rec.Username, &rec.EncryptedPassword,
		&category, &notes, &lastAccessed); err != nil {
		return nil, err
	}
	if category.Valid {
		rec.Category = &category.String
	}
	if notes.Valid {
		rec.Notes = &notes.String
	}
	if lastAccessed.Valid {
		if ts, err := time.Parse(time.RFC3339, lastAccessed.String); err == nil {
			rec.LastAccessed = &ts
		}
	}
	return &rec, nil
}
