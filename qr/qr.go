// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package qr

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels of generated images
const DefaultSize = 256

// Generate encodes url as a PNG QR code of the given size in pixels.
// A size of zero or less uses DefaultSize.
func Generate(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, errors.New("url is required")
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// JoinURL is the participant-facing link for an invite code
func JoinURL(frontendURL, inviteCode string) string {
	return strings.TrimRight(frontendURL, "/") + "/join/" + inviteCode
}
