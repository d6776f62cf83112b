package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const sealedPrefix = "v1:"

// ErrUnsealed is returned when a sealer meets a value that was stored in the clear.
var ErrUnsealed = errors.New("credential is not sealed")

// Sealer encrypts credentials at rest with XChaCha20-Poly1305.
// A nil Sealer stores values unchanged.
type Sealer struct {
	key []byte
}

// NewSealer returns nil for an empty key, so callers can pass config through unchanged.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) == 0 {
		return nil, nil
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.New("seal key must be 32 bytes")
	}
	return &Sealer{key: append([]byte(nil), key...)}, nil
}

// Seal encrypts value.
func (s *Sealer) Seal(value string) (string, error) {
	if s == nil {
		return value, nil
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(value), nil)
	return sealedPrefix + base64.RawStdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (s *Sealer) Open(value string) (string, error) {
	if s == nil {
		return value, nil
	}
	if !strings.HasPrefix(value, sealedPrefix) {
		return "", ErrUnsealed
	}
	raw, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.New("sealed credential too short")
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
