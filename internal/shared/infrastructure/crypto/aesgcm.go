// Package crypto seals small blobs, such as a saved sign-in, at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEmptyKey is returned when no key was configured.
	ErrEmptyKey = errors.New("encryption key is empty")
	// ErrKeyLength is returned for keys that are not 32 bytes.
	ErrKeyLength = errors.New("encryption key must decode to 32 bytes")
	// ErrCiphertext is returned for input that cannot have come from Seal.
	ErrCiphertext = errors.New("ciphertext too short")
)

// Sealer encrypts and decrypts data.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(ciphertext []byte) ([]byte, error)
}

// AESGCM seals with AES-256-GCM and a random nonce per message.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCMFromBase64Key builds an AESGCM from a base64-encoded 32-byte key.
func NewAESGCMFromBase64Key(encodedKey string) (*AESGCM, error) {
	if encodedKey == "" {
		return nil, ErrEmptyKey
	}
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, ErrKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESGCM{aead: aead}, nil
}

// Seal encrypts plaintext and prepends the nonce.
func (e *AESGCM) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return e.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func (e *AESGCM) Open(ciphertext []byte) ([]byte, error) {
	n := e.aead.NonceSize()
	if len(ciphertext) < n {
		return nil, ErrCiphertext
	}
	return e.aead.Open(nil, ciphertext[:n], ciphertext[n:], nil)
}
