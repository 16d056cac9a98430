// Package common defines shared sentinel errors and small helpers used
// across the vault layers. Callers should use errors.Is to match the
// sentinel values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Master-password lifecycle errors.
	ErrAlreadySetUp = errors.New("master password already set up")
	ErrSetupMissing = errors.New("master password not set up")
	ErrWeakPassword = errors.New("master password too short")

	// ErrSessionExpired is returned by every privileged operation invoked
	// without a live, unexpired session key.
	ErrSessionExpired = errors.New("session expired")

	// ErrCryptoFailure indicates an integrity failure during decryption:
	// wrong key, tampered ciphertext, or a truncated/corrupted blob.
	ErrCryptoFailure = errors.New("decryption failed")
)
