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

// ErrIntegrity is returned when a ciphertext fails authentication: it was
// tampered with, truncated, or encrypted under a different key.
var ErrIntegrity = errors.New("ciphertext integrity check failed")

// Cipher encrypts OAuth tokens for storage with AES-GCM. Ciphertexts are
// base64(nonce || sealed).
type Cipher struct {
	aead cipher.AEAD
}

// New builds a Cipher from the configured key. A missing key is a hard
// configuration error: generating one on the fly would silently invalidate
// every previously stored token on restart.
func New(key []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, errors.New("encryption key is not configured")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, sealed...)), nil
}

func (c *Cipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrIntegrity
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", ErrIntegrity
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrIntegrity
	}

	return string(plaintext), nil
}
