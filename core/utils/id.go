package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const inviteAlphabet = "0123456789ABCDEFGHJKMNPQRSTUVWXYZ"

// GenerateInviteCode returns a short, human-readable code used by standing
// reservation invitations. The alphabet drops lookalike characters (I, L, O).
func GenerateInviteCode() string {
	code, err := gonanoid.Generate(inviteAlphabet, 8)
	if err != nil {
		return ""
	}
	return code
}

// GenerateObjectKey returns a random storage key suffix for uploads.
func GenerateObjectKey() string {
	id, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 21)
	if err != nil {
		return ""
	}
	return id
}
