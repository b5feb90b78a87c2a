// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package qr renders invite links as PNG QR codes using github.com/skip2/go-qrcode.
package qr
