// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"io"
	"log/slog"
)

// NewLogger returns a logger for the authority served behind the SDK in
// tests. Records at or above level are discarded after formatting.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: level}))
}
