// Package services implements the vault's command surface: the
// master-password lifecycle and credential operations, all gated by the
// session guard.
package services

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/CloudTigerx/password-manager/internal/common"
	"github.com/CloudTigerx/password-manager/internal/cryptox"
	"github.com/CloudTigerx/password-manager/internal/dbx"
	"github.com/CloudTigerx/password-manager/internal/logging"
	"github.com/CloudTigerx/password-manager/internal/models"
	"github.com/CloudTigerx/password-manager/internal/repositories/master"
	"github.com/CloudTigerx/password-manager/internal/session"
)

// MinMasterPasswordLen is the minimum accepted master-password length.
const MinMasterPasswordLen = 8

// AuthStatus describes the vault's authentication state.
type AuthStatus struct {
	NeedsSetup      bool
	IsAuthenticated bool
}

// AuthService manages the master password and the session it unlocks.
//
// Contract:
//   - Status: report whether setup is needed and whether a session is live.
//   - Setup: create the master record and open a session. Fails with
//     common.ErrAlreadySetUp once a record exists.
//   - Authenticate: verify the master password. A wrong password is a
//     normal negative result (false, nil), not an error; a missing master
//     record is common.ErrSetupMissing.
//   - Logout: always succeeds, wiping the session key.
type AuthService interface {
	Status(ctx context.Context) (AuthStatus, error)
	Setup(ctx context.Context, masterPassword []byte) error
	Authenticate(ctx context.Context, masterPassword []byte) (bool, error)
	Logout(ctx context.Context) error
}

type authService struct {
	db     *sql.DB
	guard  *session.Guard
	logger logging.Logger
}

// NewAuthService constructs an AuthService over the given database handle
// and session guard.
func NewAuthService(db *sql.DB, guard *session.Guard, logger logging.Logger) AuthService {
	return &authService{db: db, guard: guard, logger: logger}
}

func (a *authService) getMasterRepo() master.Repository {
	return master.NewSQLiteRepository(a.db)
}

func (a *authService) Status(ctx context.Context) (AuthStatus, error) {
	exists, err := a.getMasterRepo().Exists(ctx)
	if err != nil {
		return AuthStatus{}, fmt.Errorf("failed to check master record: %w", err)
	}
	return AuthStatus{
		NeedsSetup:      !exists,
		IsAuthenticated: exists && a.guard.IsValid(),
	}, nil
}

func (a *authService) Setup(ctx context.Context, masterPassword []byte) error {
	if len(masterPassword) < MinMasterPasswordLen {
		return common.ErrWeakPassword
	}

	salt := common.GenerateRandByteArray(cryptox.SaltLen)
	hash := cryptox.HashPassword(masterPassword, salt)
	defer common.WipeByteArray(hash)

	cred := &models.MasterCredential{
		PasswordHash: hex.EncodeToString(hash),
		Salt:         hex.EncodeToString(salt),
		CreatedAt:    time.Now().UTC(),
	}

	// the fixed-key INSERT inside a transaction makes concurrent setup
	// attempts resolve to exactly one winner
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return master.NewSQLiteRepository(tx).Create(ctx, cred)
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return common.ErrAlreadySetUp
		}
		return fmt.Errorf("failed to store master record: %w", err)
	}

	a.installKey(masterPassword, salt)
	a.logger.Info(ctx, "master password configured")
	return nil
}

func (a *authService) Authenticate(ctx context.Context, masterPassword []byte) (bool, error) {
	cred, err := a.getMasterRepo().Load(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, common.ErrSetupMissing
		}
		return false, fmt.Errorf("failed to load master record: %w", err)
	}

	salt, err := hex.DecodeString(cred.Salt)
	if err != nil {
		return false, fmt.Errorf("corrupt master salt: %w", err)
	}
	expected, err := hex.DecodeString(cred.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("corrupt master hash: %w", err)
	}

	if !cryptox.VerifyPassword(masterPassword, salt, expected) {
		a.logger.Warn(ctx, "authentication rejected")
		return false, nil
	}

	a.installKey(masterPassword, salt)
	a.logger.Info(ctx, "session opened")
	return true, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.guard.Clear()
	a.logger.Info(ctx, "session closed")
	return nil
}

// installKey derives the session key and hands it to the guard, wiping the
// local copy.
func (a *authService) installKey(masterPassword, salt []byte) {
	key := cryptox.DeriveKey(masterPassword, salt)
	a.guard.Install(key)
	common.WipeByteArray(key)
}
