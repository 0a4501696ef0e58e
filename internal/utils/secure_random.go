package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=5 will result in a 10-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewTicketNumber returns a printable ticket number such as "T-9F03A1C2D7".
func NewTicketNumber() (string, error) {
	raw, err := GenerateSecureRandomString(5)
	if err != nil {
		return "", err
	}
	return "T-" + strings.ToUpper(raw), nil
}
