package testutil

import (
	"io"
	"log/slog"

	"catalog/internal/telemetry"
)

// NewTestLogger creates a standardized logger for tests.
func NewTestLogger() *slog.Logger {
	// io.Discard keeps test output quiet; swap for os.Stdout when debugging.
	baseHandler := slog.NewJSONHandler(io.Discard, nil)
	return slog.New(telemetry.NewTraceHandler(baseHandler))
}
