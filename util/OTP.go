package util

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// codeSpace is [100000, 999999]: always exactly six digits, no
// leading-zero case by construction.
const (
	codeMin   = 100000
	codeRange = 900000
)

// basic local@domain.tld shape; full RFC validation is not the goal
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// GenerateOtpCode returns a uniformly random 6-digit numeric code
func GenerateOtpCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic("otp: entropy source unavailable: " + err.Error())
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10)
}

// NormalizeEmail trims and lower-cases an address for use as a store key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail checks the basic local@domain.tld shape
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
