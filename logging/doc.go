// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging configures the default slog logger. The color format uses
// github.com/fatih/color and is meant for a terminal; text and json use the
// standard handlers.
package logging
