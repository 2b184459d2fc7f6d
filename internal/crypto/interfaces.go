package crypto

import "github.com/MKhiriev/go-zca/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/key_deriver_mock.go -package=mock

// KeyDeriver produces the device identity and the per-login encryption key
// without a server round trip.
//
// Derivation scheme:
//
//	zcid    = HEX_UPPER(AES-CBC(fixedKey, "<apiType>,<imei>,<firstLaunchMs>"))
//	zcidExt = random lowercase hex, 6..12 chars
//	key     = even(MD5_UPPER(zcidExt))[:8] + even(zcid)[:12] + reverse(odd(zcid))[:12]
type KeyDeriver interface {
	// Derive returns the identity to send with the login request and the
	// 32-character hex key used to encrypt its parameters. Failures are
	// reported as ErrKeyDerivationFailed.
	Derive(apiType int, imei string, firstLaunchTimeMs int64) (models.DeviceIdentity, string, error)
}

// Envelope encrypts and decrypts request and response payloads.
type Envelope interface {
	Encode(plain []byte) (string, error)
	EncodeHex(plain []byte, upper bool) (string, error)
	Decode(ciphertext string) ([]byte, error)
	DecodeParam(escaped string) ([]byte, error)
}
