// Package cli implements the interactive shell of the vault: the command
// loop and the prompts that feed the auth and vault services.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/CloudTigerx/password-manager/internal/config"
	"github.com/CloudTigerx/password-manager/internal/logging"
	"github.com/CloudTigerx/password-manager/internal/services"
	"github.com/CloudTigerx/password-manager/internal/session"
	"github.com/CloudTigerx/password-manager/internal/storage"
)

type App struct {
	config *config.Config
	store  *storage.Store
	guard  *session.Guard
	auth   services.AuthService
	vault  services.VaultService
	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	guard := session.NewGuard(c.SessionTimeout)

	logger.Info(ctx, "vault opened", "db", c.DatabaseDSN, "install_id", store.InstallID)

	return &App{
		config: c,
		store:  store,
		guard:  guard,
		auth:   services.NewAuthService(store.DB, guard, logger),
		vault:  services.NewVaultService(store.DB, guard, logger),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close locks the session and releases the database handle.
func (a *App) Close() error {
	a.guard.Clear()
	return a.store.Close()
}

func (a *App) isUnlocked() bool {
	return a.guard.IsValid()
}
