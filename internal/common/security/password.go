package security

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier abstracts how team passwords are stored and checked.
// Selected by config at startup; existing plaintext rows keep working
// until PASSWORD_SCHEME switches to bcrypt.
type PasswordVerifier interface {
	// Hash prepares a password for storage.
	Hash(password string) (string, error)
	// Verify reports whether password matches the stored value.
	Verify(password, stored string) bool
}

// PlaintextVerifier keeps behavioral parity with the legacy store:
// exact string equality, compared in constant time. A known security
// gap, retained only behind this interface.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextVerifier) Verify(password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

// BcryptVerifier stores bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(bytes), nil
}

func (BcryptVerifier) Verify(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// NewPasswordVerifier picks the verifier for the configured scheme.
// Anything other than "bcrypt" falls back to plaintext.
func NewPasswordVerifier(scheme string) PasswordVerifier {
	if scheme == "bcrypt" {
		return BcryptVerifier{}
	}
	return PlaintextVerifier{}
}
