// Package models defines the persisted data models of the vault.
package models

import "time"

// CredentialRecord is one stored credential. EncryptedPassword holds
// base64(nonce ‖ ciphertext ‖ tag) sealed under the session key; it stays
// encoded in listings and is only decrypted by an explicit operation.
type CredentialRecord struct {
	// ID is assigned by the store on insert.
	ID int64

	Title    string
	Username string

	EncryptedPassword string

	Category *string
	Notes    *string

	// LastAccessed is stamped when the record's password is decrypted.
	LastAccessed *time.Time
}
