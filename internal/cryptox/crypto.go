// Package cryptox implements the cryptographic core of the vault:
// master-key derivation, master-password hashing/verification, and
// authenticated encryption of stored credential payloads.
//
// Two separate Argon2id derivations are used on purpose. The verification
// hash proves the user's identity and is tuned slow; the encryption key
// protects the data and is tuned fast enough to re-derive once per session.
// Both take the same per-installation salt.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/CloudTigerx/password-manager/internal/common"
)

const (
	// KeyLen is the symmetric key size in bytes (AES-256).
	KeyLen = 32

	// SaltLen is the per-installation salt size in bytes.
	SaltLen = 32

	// NonceSize is the AES-GCM nonce width prepended to every blob.
	NonceSize = 12
)

// Argon2id costs. Derivation runs once per session, hashing once per
// login attempt, so the latter carries the higher time cost.
const (
	deriveTime    uint32 = 1
	deriveThreads uint8  = 4

	hashTime    uint32 = 3
	hashThreads uint8  = 1

	argonMemory uint32 = 64 * 1024
)

// DeriveKey turns a master password and salt into the 256-bit session key.
// Deterministic: the same inputs always produce the same key, across
// process restarts, which is what lets a future session decrypt records
// written by an earlier one.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, deriveTime, argonMemory, deriveThreads, KeyLen)
}

// HashPassword returns the Argon2id verification hash of password under salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, hashTime, argonMemory, hashThreads, KeyLen)
}

// VerifyPassword verifies password against the expected verification hash
// in constant time.
func VerifyPassword(password, salt, expected []byte) bool {
	got := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// EncryptString encrypts plaintext with AES-256-GCM under key using a fresh
// random 12-byte nonce and returns base64(nonce ‖ ciphertext ‖ tag) ready
// for text storage.
func EncryptString(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("cipher init failed: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("gcm init failed: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nonce generation failed: %w", err)
	}

	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptString reverses EncryptString. Any damage to the blob, a
// truncation, or a key other than the one it was sealed under yields an
// error wrapping common.ErrCryptoFailure; it never returns garbage
// plaintext.
func DecryptString(key []byte, blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: invalid encoding", common.ErrCryptoFailure)
	}
	if len(raw) <= NonceSize {
		return "", fmt.Errorf("%w: blob too short", common.ErrCryptoFailure)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("cipher init failed: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("gcm init failed: %w", err)
	}

	plaintext, err := aesgcm.Open(nil, raw[:NonceSize], raw[NonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication tag mismatch", common.ErrCryptoFailure)
	}
	return string(plaintext), nil
}
