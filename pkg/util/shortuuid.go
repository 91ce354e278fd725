package util

import (
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// NewUUID returns a new base58 encoded UUID. Used where an id ends up in logs or
// filenames and a 36 character UUID is noisy (batch ids).
func NewUUID() string {
	id := uuid.New()
	return base58.Encode(id[:])
}

// NewLedgerID returns a canonical UUID string for ledger and settings rows.
func NewLedgerID() string {
	return uuid.NewString()
}

// IsUUID reports whether s is a canonical UUID string.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
