package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/CloudTigerx/password-manager/internal/common"
)

func (a *App) add(ctx context.Context) {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	username, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	password, err := getPassword("Password", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer common.WipeByteArray(password)

	category, err := GetOptionalText(a.reader, "Category", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	notes, err := GetOptionalText(a.reader, "Notes", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.vault.Add(ctx, title, username, string(password), category, notes); err != nil {
		a.reportVaultError(err)
		return
	}
	fmt.Println("Saved.")
}

func (a *App) list(ctx context.Context) {
	records, err := a.vault.List(ctx)
	if err != nil {
		a.reportVaultError(err)
		return
	}
	if len(records) == 0 {
		fmt.Println("The vault is empty.")
		return
	}
	for _, rec := range records {
		line := fmt.Sprintf("%d\t%s\t%s", rec.ID, rec.Title, rec.Username)
		if rec.Category != nil {
			line += "\t[" + *rec.Category + "]"
		}
		fmt.Println(line)
	}
}

func (a *App) show(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "show")
	if !ok {
		return
	}

	plaintext, err := a.vault.Decrypt(ctx, id)
	if err != nil {
		a.reportVaultError(err)
		return
	}
	fmt.Println(plaintext)
}

func (a *App) delete(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "delete")
	if !ok {
		return
	}

	if err := a.vault.Delete(ctx, id); err != nil {
		a.reportVaultError(err)
		return
	}
	fmt.Println("Deleted.")
}

// parseID reads the record id from args, prompting when missing.
func (a *App) parseID(args []string, verb string) (int64, bool) {
	s := ""
	if len(args) > 0 {
		s = args[0]
	} else {
		var err error
		s, err = getSimpleText(a.reader, "Enter record id to "+verb, os.Stdout)
		if err != nil {
			log.Printf("error: %v", err)
			return 0, false
		}
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Printf("invalid record id %q", s)
		return 0, false
	}
	return id, true
}

func (a *App) reportVaultError(err error) {
	switch {
	case errors.Is(err, common.ErrSessionExpired):
		log.Println("Session expired; run 'login' to unlock the vault")
	case errors.Is(err, common.ErrNotFound):
		log.Println("No record with that id")
	case errors.Is(err, common.ErrCryptoFailure):
		log.Println("Could not decrypt the record: wrong key or corrupted data")
	default:
		log.Printf("Error: %s", err.Error())
	}
}
