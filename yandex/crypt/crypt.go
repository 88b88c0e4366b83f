// Package crypt reverses the stream-cipher obfuscation applied to
// container-encrypted codec payloads: AES-128-CTR with an all-zero IV.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"io"
)

const keySize = 16

// NewReader wraps r so reads yield the decrypted payload. hexKey is the
// decryption key from file-info; it must decode to exactly 16 bytes. CTR
// is length-preserving, so decrypted output length equals input length.
func NewReader(r io.Reader, hexKey string) (io.Reader, error) {
	key, err := hex.DecodeString(hexKey)
	if nil != err {
		return nil, fmt.Errorf("failed to decode decryption key: %v", err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("decryption key must be %d bytes, got %d", keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if nil != err {
		return nil, fmt.Errorf("failed to create cipher: %v", err)
	}

	iv := make([]byte, aes.BlockSize)

	return &cipher.StreamReader{S: cipher.NewCTR(block, iv), R: r}, nil
}
