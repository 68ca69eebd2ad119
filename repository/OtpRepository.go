package repository

import (
	"errors"

	"umkmotion-otp/model"
)

// Store-level sentinel errors. The service layer maps these onto its
// user-facing taxonomy.
var (
	ErrOtpNotFound = errors.New("otp record not found")
	ErrOtpUsed     = errors.New("otp record already used")
)

// OtpRepository is the pluggable store for OTP records. The service logic
// is identical whether the backing store is the in-memory map or Postgres.
type OtpRepository interface {
	// Insert stores a new record under its (email, code) key
	Insert(rec *model.OtpRecord) error

	// Get returns a copy of the record, or ErrOtpNotFound.
	// Expiry is NOT checked here; the service owns that decision.
	Get(key string) (*model.OtpRecord, error)

	// MarkUsed atomically flips the used flag. Returns ErrOtpUsed if the
	// record was already consumed (two concurrent verifies: one winner),
	// ErrOtpNotFound if the key is unknown.
	MarkUsed(key string) error

	// DeleteExpired evicts records whose lifetime has passed
	DeleteExpired() error
}
