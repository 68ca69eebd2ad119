package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for password hashing
const (
	argon2Time      = 3
	argon2Memory    = 64 * 1024 // 64 MB
	argon2Threads   = 4
	argon2KeyLength = 32
	argon2SaltLen   = 16
)

// HashPassword hashes a plaintext password using argon2id
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLength)
	return encodeArgon2Hash(salt, hash), nil
}

// ComparePassword compares an argon2id hash with a plaintext password
func ComparePassword(hashed, plain string) error {
	salt, hash, err := decodeArgon2Hash(hashed)
	if err != nil {
		return err
	}

	computed := argon2.IDKey([]byte(plain), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLength)
	if subtle.ConstantTimeCompare(hash, computed) != 1 {
		return errors.New("invalid password")
	}
	return nil
}

func encodeArgon2Hash(salt, hash []byte) string {
	return "$argon2id$v=19$m=65536,t=3,p=4$" +
		hex.EncodeToString(salt) + "$" +
		hex.EncodeToString(hash)
}

func decodeArgon2Hash(encoded string) ([]byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, errors.New("invalid argon2 hash format")
	}

	salt, err := hex.DecodeString(parts[4])
	if err != nil {
		return nil, nil, errors.New("invalid salt encoding")
	}

	hash, err := hex.DecodeString(parts[5])
	if err != nil {
		return nil, nil, errors.New("invalid hash encoding")
	}

	return salt, hash, nil
}
