// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package draft

// Logger is the diagnostics collaborator. Store and parse failures are
// reported here and nowhere else; the UI never sees them.
type Logger interface {
	Warnf(format string, args ...any)
}

// NopLogger discards all diagnostics.
type NopLogger struct{}

func (NopLogger) Warnf(format string, args ...any) {}
