package master

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CloudTigerx/password-manager/internal/common"
	"github.com/CloudTigerx/password-manager/internal/dbx"
	"github.com/CloudTigerx/password-manager/internal/models"
)

// masterRowID is the fixed primary key of the single master_auth row.
// A second INSERT with the same key violates the constraint, which is
// what makes create-if-absent atomic.
const masterRowID = 1

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Exists(ctx context.Context) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM master_auth WHERE id = ?`, masterRowID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query master record: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, cred *models.MasterCredential) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO master_auth (id, password_hash, salt, created_at) VALUES (?, ?, ?, ?)`,
		masterRowID, cred.PasswordHash, cred.Salt, cred.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if isConstraintViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert master record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.MasterCredential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT password_hash, salt, created_at FROM master_auth WHERE id = ?`, masterRowID)

	var (
		cred      models.MasterCredential
		createdAt string
	)
	if err := row.Scan(&cred.PasswordHash, &cred.Salt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load master record: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse master record timestamp: %w", err)
	}
	cred.CreatedAt = ts
	return &cred, nil
}

// isConstraintViolation matches the sqlite driver's constraint errors
// without depending on driver-specific error types.
func isConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
