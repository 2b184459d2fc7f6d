package utils

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-zca/internal/crypto"
)

// GenerateIMEI returns a device identifier in the web client's format: a
// random UUID followed by the MD5 hex digest of the user agent.
func GenerateIMEI(userAgent string) string {
	id, err := uuid.NewRandom()
	if err != nil {
		id = uuid.New()
	}
	return id.String() + "-" + crypto.MD5Hex(userAgent)
}
