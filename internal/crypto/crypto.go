// Package crypto is the password-encryption helper for fixture files that
// carry credential values: a thin wrapper over AES-256-GCM with a
// PBKDF2-derived key. It has nothing to do with the generator's PRNG, which
// is deliberately not cryptographic.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize    = 32
	nonceSize  = 12
	saltSize   = 32
	iterations = 100000
)

// Encryptor seals and opens data under a caller-supplied password.
type Encryptor struct {
	password []byte
}

// NewEncryptor creates an encryptor for the given password.
func NewEncryptor(password string) (*Encryptor, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	return &Encryptor{password: []byte(password)}, nil
}

// Seal encrypts plaintext and returns a single base64 string embedding the
// salt, nonce and ciphertext.
func (e *Encryptor) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := e.cipherFor(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	combined := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	combined = append(combined, salt...)
	combined = append(combined, nonce...)
	combined = append(combined, ciphertext...)

	return base64.StdEncoding.EncodeToString(combined), nil
}

// Open decrypts a string produced by Seal.
func (e *Encryptor) Open(encoded string) ([]byte, error) {
	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(combined) < saltSize+nonceSize {
		return nil, fmt.Errorf("invalid data size: expected at least %d bytes, got %d", saltSize+nonceSize, len(combined))
	}

	salt := combined[:saltSize]
	nonce := combined[saltSize : saltSize+nonceSize]
	ciphertext := combined[saltSize+nonceSize:]

	gcm, err := e.cipherFor(salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// SealString is Seal for string plaintext.
func (e *Encryptor) SealString(plaintext string) (string, error) {
	return e.Seal([]byte(plaintext))
}

// OpenString is Open returning string plaintext.
func (e *Encryptor) OpenString(encoded string) (string, error) {
	plaintext, err := e.Open(encoded)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// cipherFor derives the AES-GCM AEAD for a given salt.
func (e *Encryptor) cipherFor(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(e.password, salt, iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// ValidatePassword validates a password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return fmt.Errorf("password must be at least 12 characters long")
	}
	return nil
}
