package cryptox

import "golang.org/x/crypto/argon2"

// DeriveKey stretches a passphrase into a 32-byte AES-256 key using argon2id.
func DeriveKey(passphrase string) []byte {
	return argon2.IDKey([]byte(passphrase), keySalt, 1, 64*1024, 4, 32)
}
