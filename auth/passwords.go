package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 100000
	hashKeyLen     = 64
	saltLen        = 16
)

// HashPassword derives a PBKDF2-SHA512 hash with a fresh random salt.
// The stored form is "salt:hash", both hex encoded.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	saltHex := hex.EncodeToString(salt)
	hash := pbkdf2.Key([]byte(password), []byte(saltHex), hashIterations, hashKeyLen, sha512.New)

	return saltHex + ":" + hex.EncodeToString(hash), nil
}

// VerifyPassword checks a password against a stored "salt:hash" value in
// constant time. A malformed stored value is simply a non-match.
func VerifyPassword(password, stored string) bool {
	saltHex, hashHex, found := strings.Cut(stored, ":")
	if !found || saltHex == "" || hashHex == "" {
		return false
	}

	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	hash := pbkdf2.Key([]byte(password), []byte(saltHex), hashIterations, hashKeyLen, sha512.New)

	return subtle.ConstantTimeCompare(hash, expected) == 1
}
