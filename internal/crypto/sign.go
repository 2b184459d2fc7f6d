package crypto

import (
	"crypto/md5"
	"encoding/hex"
	"maps"
	"slices"
	"strings"
)

const signPrefix = "zsecure"

// Sign computes the signkey request parameter: the MD5 hex digest of
// "zsecure" + requestType + every param value in ascending key order.
func Sign(requestType string, params map[string]string) string {
	var b strings.Builder
	b.WriteString(signPrefix)
	b.WriteString(requestType)
	for _, k := range slices.Sorted(maps.Keys(params)) {
		b.WriteString(params[k])
	}
	return MD5Hex(b.String())
}

// MD5Hex returns the lowercase hex MD5 digest of s.
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
