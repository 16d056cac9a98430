// Package credentials provides CRUD over stored credential records.
// Password fields pass through this package only in their encrypted,
// encoded form.
package credentials

import (
	"context"
	"time"

	"github.com/CloudTigerx/password-manager/internal/models"
)

type Repository interface {
	// Insert stores a new record and returns the store-assigned id.
	Insert(ctx context.Context, rec *models.CredentialRecord) (int64, error)

	// GetAll returns every stored record, encrypted_password left encoded.
	GetAll(ctx context.Context) ([]models.CredentialRecord, error)

	// GetByID returns one record, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.CredentialRecord, error)

	// DeleteByID removes a record. Deleting a missing id is a no-op.
	DeleteByID(ctx context.Context, id int64) error

	// TouchLastAccessed stamps the record's last_accessed column.
	TouchLastAccessed(ctx context.Context, id int64, at time.Time) error
}
