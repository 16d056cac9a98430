package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/CloudTigerx/password-manager/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Setup prompts for a new master password (twice) and initializes the
// vault. On success the vault is left unlocked.
func (a *App) Setup(ctx context.Context) error {
	password, err := getPassword("Choose a master password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm master password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		log.Println("Passwords do not match")
		return nil
	}

	if err := a.auth.Setup(ctx, password); err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadySetUp):
			log.Println("Vault is already set up; use 'login' instead")
		case errors.Is(err, common.ErrWeakPassword):
			log.Println("Master password must be at least 8 characters")
		default:
			log.Printf("Setup failed: %s", err.Error())
		}
		return err
	}

	fmt.Println("Vault initialized and unlocked.")
	fmt.Println("Remember this password: the vault cannot be recovered without it.")
	return nil
}

// Login prompts for the master password and unlocks the vault.
func (a *App) Login(ctx context.Context) error {
	password, err := getPassword("Enter master password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.auth.Authenticate(ctx, password)
	if err != nil {
		if errors.Is(err, common.ErrSetupMissing) {
			log.Println("Vault is not set up yet; run 'setup' first")
		} else {
			log.Printf("Login failed: %s", err.Error())
		}
		return err
	}
	if !ok {
		log.Println("Incorrect master password")
		return nil
	}

	fmt.Println("Vault unlocked.")
	return nil
}

// Logout locks the vault.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Vault locked.")
	return nil
}

// Status prints the setup/lock state.
func (a *App) Status(ctx context.Context) error {
	status, err := a.auth.Status(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	switch {
	case status.NeedsSetup:
		fmt.Println("No master password yet; run 'setup'")
	case status.IsAuthenticated:
		fmt.Println("Vault is unlocked")
	default:
		fmt.Println("Vault is locked; run 'login'")
	}
	return nil
}
