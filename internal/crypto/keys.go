// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-zca/models"
)

const (
	// EncVersion is reported as enc_ver with every derived identity.
	EncVersion = "v2"

	zcidKey           = "3FC4F0D2AB50057BCE0D90D9187A22B1"
	maxDeriveAttempts = 3
	zcidExtMinLen     = 6
	zcidExtMaxLen     = 12
	hexDigits         = "0123456789abcdef"
)

// keyDeriver is the private implementation of [KeyDeriver].
type keyDeriver struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewKeyDeriver returns a [KeyDeriver] whose random zcid_ext values come
// from a ChaCha8 stream seeded by the OS CSPRNG.
func NewKeyDeriver() KeyDeriver {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return &keyDeriver{rand: rand.New(rand.NewChaCha8(seed))}
}

// NewSeededKeyDeriver returns a deterministic [KeyDeriver]: two derivers
// built from the same seed derive identical keys for identical inputs.
func NewSeededKeyDeriver(seed uint64) KeyDeriver {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return &keyDeriver{rand: rand.New(rand.NewChaCha8(s))}
}

// Derive implements [KeyDeriver].
func (k *keyDeriver) Derive(apiType int, imei string, firstLaunchTimeMs int64) (models.DeviceIdentity, string, error) {
	zcid, err := createZcid(apiType, imei, firstLaunchTimeMs)
	if err != nil {
		return models.DeviceIdentity{}, "", err
	}

	var lastErr error
	for attempt := 1; attempt <= maxDeriveAttempts; attempt++ {
		zcidExt := k.randomHex(zcidExtMinLen, zcidExtMaxLen)

		key, err := createEncryptKey(zcidExt, zcid)
		if err != nil {
			lastErr = err
			continue
		}

		return models.DeviceIdentity{Zcid: zcid, ZcidExt: zcidExt, EncVersion: EncVersion}, key, nil
	}
	return models.DeviceIdentity{}, "", fmt.Errorf("%w: %v", ErrKeyDerivationFailed, lastErr)
}

func createZcid(apiType int, imei string, firstLaunchTimeMs int64) (string, error) {
	if apiType <= 0 || imei == "" || firstLaunchTimeMs <= 0 {
		return "", fmt.Errorf("%w: missing params", ErrKeyDerivationFailed)
	}

	codec, err := NewDeviceCodec(zcidKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}

	plain := strconv.Itoa(apiType) + "," + imei + "," + strconv.FormatInt(firstLaunchTimeMs, 10)
	zcid, err := codec.EncodeHex([]byte(plain), true)
	if err != nil {
		return "", fmt.Errorf("%w: zcid: %v", ErrKeyDerivationFailed, err)
	}
	return zcid, nil
}

func createEncryptKey(zcidExt, zcid string) (string, error) {
	digestEven, _ := processStr(strings.ToUpper(MD5Hex(zcidExt)))
	zcidEven, zcidOdd := processStr(zcid)

	if len(digestEven) < 8 || len(zcidEven) < 12 || len(zcidOdd) < 12 {
		return "", errShortSubsequence
	}

	var b strings.Builder
	b.Grow(32)
	b.WriteString(digestEven[:8])
	b.WriteString(zcidEven[:12])
	b.WriteString(reverse(zcidOdd)[:12])
	return b.String(), nil
}

// processStr splits s into the characters at even and odd positions.
func processStr(s string) (even, odd string) {
	var e, o strings.Builder
	for i := 0; i < len(s); i++ {
		if i%2 == 0 {
			e.WriteByte(s[i])
		} else {
			o.WriteByte(s[i])
		}
	}
	return e.String(), o.String()
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func (k *keyDeriver) randomHex(minLen, maxLen int) string {
	k.mu.Lock()
	defer k.mu.Unlock()

	n := minLen + k.rand.IntN(maxLen-minLen+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = hexDigits[k.rand.IntN(len(hexDigits))]
	}
	return string(b)
}
