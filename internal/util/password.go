package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"unicode"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing them invalidates every stored hash.
const (
	passwordSaltLen = 16
	passwordKeyLen  = 32
	argonPasses     = 1
	argonMemoryKiB  = 64 * 1024
	argonLanes      = 4
)

const minPasswordLength = 12

// ValidatePassword enforces the account password policy: minimum length and
// one character from each of the four classes.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 12 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return errors.New("password must include uppercase, lowercase, number, and special character")
	}

	return nil
}

// DerivePassword hashes a password under a fresh random salt.
func DerivePassword(password string) (hash, salt []byte, err error) {
	if password == "" {
		return nil, nil, errors.New("password cannot be empty")
	}
	salt = make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return deriveKey(password, salt), salt, nil
}

// VerifyPassword reports whether the password matches the stored hash. The
// comparison is constant time.
func VerifyPassword(password string, salt, expected []byte) bool {
	if password == "" || len(salt) == 0 || len(expected) == 0 {
		return false
	}
	candidate := deriveKey(password, salt)
	if len(candidate) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare(candidate, expected) == 1
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonPasses, argonMemoryKiB, argonLanes, passwordKeyLen)
}
