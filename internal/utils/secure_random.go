package utils

import (
	"crypto/rand"
	"fmt"
)

// invitationCodeAlphabet excludes ambiguous characters (0/O, 1/I/L).
const invitationCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// invitationCodeLength is the number of characters in a generated code.
const invitationCodeLength = 10

// GenerateInvitationCode returns a cryptographically random invitation code.
func GenerateInvitationCode() (string, error) {
	b := make([]byte, invitationCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = invitationCodeAlphabet[int(b[i])%len(invitationCodeAlphabet)]
	}
	return string(b), nil
}
