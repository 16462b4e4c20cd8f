// Package cryptox seals snapshot objects at rest with AES-256-GCM under a
// key derived from an operator passphrase.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
)

const nonceSize = 12

var ErrSealedTooShort = errors.New("sealed data too short")

// DeriveKey stretches passphrase into a 32-byte key with argon2id. The salt
// is the BLAKE2b-256 of context, so one passphrase yields distinct keys per
// deployment.
func DeriveKey(passphrase []byte, context string) []byte {
	salt := blake2b.Sum256([]byte(context))
	return argon2.IDKey(passphrase, salt[:], 1, 64*1024, 4, 32)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext and returns nonce || ciphertext. additional is
// authenticated but not encrypted.
func Seal(plaintext, key, additional []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, additional), nil
}

// Open reverses Seal.
func Open(sealed, key, additional []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, ErrSealedTooShort
	}
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], additional)
}
