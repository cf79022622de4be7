// Package cryptox implements the symmetric cipher used for cloud backups:
// AES-GCM over an argon2id-derived key, with the nonce prepended to the
// ciphertext and the whole payload base64-encoded so it survives any
// text-only transport.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// keySalt is a fixed salt for DeriveKey. Combined with a single static
// passphrase this means every install derives the same backup key; per-user
// derivation would need a per-user salt stored next to the credential record.
var keySalt = []byte("healthkeeper.backup.v1")

// gcmNonceSize is the standard 12-byte AES-GCM nonce length.
const gcmNonceSize = 12

// Encrypt seals plaintext with AES-GCM under key and returns
// base64(nonce || ciphertext). A fresh random nonce is generated per call.
//
// The key must be a valid AES key length (16, 24, or 32 bytes).
func Encrypt(plaintext, key []byte) (string, error) {
	nonce := make([]byte, gcmNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	payload := make([]byte, 0, len(nonce)+len(ciphertext))
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decrypt reverses Encrypt: it base64-decodes the payload, splits off the
// nonce, and opens the AES-GCM ciphertext. Any tampering with the payload
// fails authentication and returns an error.
func Decrypt(encoded string, key []byte) ([]byte, error) {
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	if len(payload) < gcmNonceSize {
		return nil, fmt.Errorf("malformed payload: too short")
	}

	nonce, ciphertext := payload[:gcmNonceSize], payload[gcmNonceSize:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}
