package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateOTP returns a numeric one-time code of the given length. Random
// bytes are hex-encoded and truncated; any non-digit character is mapped to
// '0' so the result is always digits only.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := []byte(hex.EncodeToString(buf)[:length])
	for i, c := range code {
		if c < '0' || c > '9' {
			code[i] = '0'
		}
	}

	return string(code), nil
}
