package common

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// MakeRandHexString returns size random bytes encoded as hex, so the result
// is twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites b with zeros. Use it for passwords read from the
// terminal once they are no longer needed. Nil is ignored.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// EmailLocalPart returns the part of an address before the first '@'.
// An address without '@' is returned unchanged.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
