// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// maxCipherAttempts bounds how many times a single codec operation is tried.
const maxCipherAttempts = 3

var _ Envelope = (*Codec)(nil)

// Codec is the AES-128-CBC envelope used by the web API: zero IV, PKCS#7
// padding, base64 or hex text encoding. A Codec is immutable and safe for
// concurrent use.
type Codec struct {
	key      []byte
	attempts int
	newBlock func(key []byte) (cipher.Block, error)
}

// NewSessionCodec builds a codec from the base64-encoded session key
// (zpw_enk) issued after login.
func NewSessionCodec(secretKey string) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: session key is not base64: %v", ErrInvalidKey, err)
	}
	return newCodec(key)
}

// NewDeviceCodec builds a codec from a hex key, as produced by the key
// derivation or the fixed identity key.
func NewDeviceCodec(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: device key is not hex: %v", ErrInvalidKey, err)
	}
	return newCodec(key)
}

func newCodec(key []byte) (*Codec, error) {
	if len(key) != aes.BlockSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, aes.BlockSize, len(key))
	}
	return &Codec{
		key:      bytes.Clone(key),
		attempts: maxCipherAttempts,
		newBlock: aes.NewCipher,
	}, nil
}

// Encode encrypts plain and returns standard base64.
func (c *Codec) Encode(plain []byte) (string, error) {
	out, err := c.encrypt(plain)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// EncodeHex encrypts plain and returns hex, upper-cased when upper is set.
func (c *Codec) EncodeHex(plain []byte, upper bool) (string, error) {
	out, err := c.encrypt(plain)
	if err != nil {
		return "", err
	}
	s := hex.EncodeToString(out)
	if upper {
		s = strings.ToUpper(s)
	}
	return s, nil
}

// Decode decrypts a standard base64 ciphertext.
func (c *Codec) Decode(ciphertext string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext is not base64: %v", ErrEnvelopeCodecFailed, err)
	}
	return c.decrypt(raw)
}

// DecodeParam decrypts a base64 ciphertext that was percent-encoded for a
// URL. A '+' is kept as is since it belongs to the base64 alphabet.
func (c *Codec) DecodeParam(escaped string) ([]byte, error) {
	s, err := url.PathUnescape(escaped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelopeCodecFailed, err)
	}
	return c.Decode(s)
}

func (c *Codec) encrypt(plain []byte) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		block, err := c.newBlock(c.key)
		if err != nil {
			lastErr = err
			continue
		}

		padded := pkcs7Pad(plain, block.BlockSize())
		out := make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, make([]byte, block.BlockSize())).CryptBlocks(out, padded)
		return out, nil
	}
	return nil, fmt.Errorf("%w: encrypt after %d attempts: %v", ErrEnvelopeCodecFailed, c.attempts, lastErr)
}

func (c *Codec) decrypt(raw []byte) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		block, err := c.newBlock(c.key)
		if err != nil {
			lastErr = err
			continue
		}

		size := block.BlockSize()
		if len(raw) == 0 || len(raw)%size != 0 {
			lastErr = errInvalidBlockSize
			continue
		}

		out := make([]byte, len(raw))
		cipher.NewCBCDecrypter(block, make([]byte, size)).CryptBlocks(out, raw)

		plain, err := pkcs7Unpad(out, size)
		if err != nil {
			lastErr = err
			continue
		}
		return plain, nil
	}
	return nil, fmt.Errorf("%w: decrypt after %d attempts: %v", ErrEnvelopeCodecFailed, c.attempts, lastErr)
}

func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	if len(data) == 0 || len(data)%size != 0 {
		return nil, errInvalidPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > size {
		return nil, errInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
