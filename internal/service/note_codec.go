package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"e-wallet-core/pkg/apperror"
)

// AESNoteCodec implements ports.NoteCodec using AES-256-GCM.
// An empty memo produces no token; a missing token opens to an empty memo.
type AESNoteCodec struct {
	key []byte // 32-byte key for AES-256
}

// NewAESNoteCodec creates a codec from a 64-character hex key (32 bytes).
func NewAESNoteCodec(hexKey string) (*AESNoteCodec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding AES key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("AES key must be 32 bytes, got %d", len(key))
	}
	return &AESNoteCodec{key: key}, nil
}

// Encrypt seals plaintext with AES-256-GCM.
// Returns a hex-encoded nonce+ciphertext token, or "" for empty input.
func (c *AESNoteCodec) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("creating GCM: %w", err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

// Decrypt opens a hex-encoded token. Malformed, tampered, or foreign-key
// tokens fail with an ENC_001 error; an empty token yields an empty memo.
func (c *AESNoteCodec) Decrypt(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	ciphertext, err := hex.DecodeString(token)
	if err != nil {
		return "", apperror.ErrDecryptionFailure(fmt.Errorf("decoding token: %w", err))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", apperror.ErrDecryptionFailure(fmt.Errorf("creating cipher: %w", err))
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", apperror.ErrDecryptionFailure(fmt.Errorf("creating GCM: %w", err))
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", apperror.ErrDecryptionFailure(fmt.Errorf("token too short"))
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", apperror.ErrDecryptionFailure(fmt.Errorf("opening note: %w", err))
	}

	return string(plaintext), nil
}
