package crypto

import "errors"

var (
	// ErrKeyDerivationFailed is returned when the device identity or the
	// encryption key cannot be produced within the attempt budget.
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// ErrEnvelopeCodecFailed is returned when encryption or decryption keeps
	// failing after every attempt.
	ErrEnvelopeCodecFailed = errors.New("envelope codec failed")

	// ErrInvalidKey is returned when a codec key is malformed or is not
	// 128 bits long.
	ErrInvalidKey = errors.New("invalid codec key")

	errInvalidPadding   = errors.New("invalid PKCS#7 padding")
	errInvalidBlockSize = errors.New("ciphertext is not a multiple of the block size")
	errShortSubsequence = errors.New("subsequence too short")
)
