// Package master persists the singleton master-password record.
package master

import (
	"context"

	"github.com/CloudTigerx/password-manager/internal/models"
)

// Repository stores and retrieves the one-and-only master credential.
type Repository interface {
	// Exists reports whether the master record has been created.
	Exists(ctx context.Context) (bool, error)

	// Create inserts the master record. If one already exists the call
	// fails with common.ErrAlreadyExists; the store's fixed primary key
	// makes the check atomic against concurrent setup attempts.
	Create(ctx context.Context, cred *models.MasterCredential) error

	// Load returns the master record, or common.ErrNotFound.
	Load(ctx context.Context) (*models.MasterCredential, error)
}
