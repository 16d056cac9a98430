package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CloudTigerx/password-manager/internal/common"
	"github.com/CloudTigerx/password-manager/internal/cryptox"
	"github.com/CloudTigerx/password-manager/internal/logging"
	"github.com/CloudTigerx/password-manager/internal/models"
	"github.com/CloudTigerx/password-manager/internal/repositories/credentials"
	"github.com/CloudTigerx/password-manager/internal/session"
)

// VaultService is the privileged credential surface. Every call checks the
// session guard first and refreshes its activity clock when it proceeds;
// an expired session yields common.ErrSessionExpired.
type VaultService interface {
	// List returns all records with encrypted_password left encoded.
	List(ctx context.Context) ([]models.CredentialRecord, error)

	// Add encrypts plaintextPassword under the live session key and
	// stores a new record.
	Add(ctx context.Context, title, username, plaintextPassword string, category, notes *string) error

	// Decrypt returns the plaintext password of one record and stamps its
	// last access time. Fails with common.ErrNotFound for an unknown id
	// and common.ErrCryptoFailure when the blob does not verify.
	Decrypt(ctx context.Context, id int64) (string, error)

	// Delete removes a record; a missing id is a no-op success.
	Delete(ctx context.Context, id int64) error
}

type vaultService struct {
	db     *sql.DB
	guard  *session.Guard
	logger logging.Logger
}

// NewVaultService constructs a VaultService over the given database handle
// and session guard.
func NewVaultService(db *sql.DB, guard *session.Guard, logger logging.Logger) VaultService {
	return &vaultService{db: db, guard: guard, logger: logger}
}

func (s *vaultService) getCredentialRepo() credentials.Repository {
	return credentials.NewSQLiteRepository(s.db)
}

func (s *vaultService) List(ctx context.Context) ([]models.CredentialRecord, error) {
	if err := s.guard.Refresh(); err != nil {
		return nil, err
	}

	records, err := s.getCredentialRepo().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	return records, nil
}

func (s *vaultService) Add(ctx context.Context, title, username, plaintextPassword string, category, notes *string) error {
	key, err := s.guard.Begin()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	blob, err := cryptox.EncryptString(key, plaintextPassword)
	if err != nil {
		return fmt.Errorf("encryption error: %w", err)
	}

	rec := &models.CredentialRecord{
		Title:             title,
		Username:          username,
		EncryptedPassword: blob,
		Category:          category,
		Notes:             notes,
	}

	id, err := s.getCredentialRepo().Insert(ctx, rec)
	if err != nil {
		return fmt.Errorf("saving error: %w", err)
	}

	s.logger.Info(ctx, "credential stored", "id", id, "title", title)
	return nil
}

func (s *vaultService) Decrypt(ctx context.Context, id int64) (string, error) {
	key, err := s.guard.Begin()
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)

	repo := s.getCredentialRepo()

	rec, err := repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	plaintext, err := cryptox.DecryptString(key, rec.EncryptedPassword)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt credential %d: %w", id, err)
	}

	// best effort; the caller already has the plaintext
	if err := repo.TouchLastAccessed(ctx, id, time.Now()); err != nil {
		s.logger.Warn(ctx, "failed to stamp last access", "id", id, "error", err)
	}

	return plaintext, nil
}

func (s *vaultService) Delete(ctx context.Context, id int64) error {
	if err := s.guard.Refresh(); err != nil {
		return err
	}

	if err := s.getCredentialRepo().DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	s.logger.Info(ctx, "credential deleted", "id", id)
	return nil
}
