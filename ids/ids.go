// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// InviteCodeLength is the number of characters in an invite code
const InviteCodeLength = 8

const inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// MustID is GenerateID(16) for callers that treat entropy failure as fatal
func MustID() string {
	id, err := GenerateID(16)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateInviteCode creates a random upper-case alphanumeric invite code.
// Uniqueness is the caller's job; collisions are retried against the store.
func GenerateInviteCode() (string, error) {
	b := make([]byte, InviteCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}

	// 256 is not a multiple of 36, so reject the top of the range to stay uniform
	const limit = 256 - 256%len(inviteAlphabet)
	code := make([]byte, 0, InviteCodeLength)
	for len(code) < InviteCodeLength {
		for _, c := range b {
			if int(c) >= limit {
				continue
			}
			code = append(code, inviteAlphabet[int(c)%len(inviteAlphabet)])
			if len(code) == InviteCodeLength {
				break
			}
		}
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
	}
	return string(code), nil
}

// ValidInviteCode reports whether code has the shape GenerateInviteCode produces
func ValidInviteCode(code string) bool {
	if len(code) != InviteCodeLength {
		return false
	}
	for _, c := range code {
		if !((c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
