package util

import (
	"strings"
)

// IsDuplicateKeyError checks if the error is a database constraint violation.
// The string check works for Postgres "SQLSTATE 23505".
func IsDuplicateKeyError(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "23505")
}
