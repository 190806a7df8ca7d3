package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewHonorsLevel(t *testing.T) {
	ctx := context.Background()

	if !New("debug").Enabled(ctx, slog.LevelDebug) {
		t.Fatalf("debug logger must pass debug records")
	}
	if New("error").Enabled(ctx, slog.LevelWarn) {
		t.Fatalf("error logger must drop warn records")
	}
	if New("WARN").Enabled(ctx, slog.LevelInfo) {
		t.Fatalf("level names must be case insensitive")
	}
	if !New("verbose").Enabled(ctx, slog.LevelInfo) || New("verbose").Enabled(ctx, slog.LevelDebug) {
		t.Fatalf("unknown level must fall back to info")
	}
}
