package models

import "time"

// MasterCredential is the singleton master-password record. At most one
// instance ever exists; it is created once and never updated or deleted.
// PasswordHash and Salt are hex encoded for text storage.
type MasterCredential struct {
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}
