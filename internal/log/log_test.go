package log

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetup_Verbose(t *testing.T) {
	Setup(true, false)
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("verbose mode should enable DEBUG")
	}
}

func TestSetup_Quiet(t *testing.T) {
	Setup(false, true)
	if slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("quiet mode should suppress INFO")
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("quiet mode should keep WARN")
	}
}

func TestSetup_Default(t *testing.T) {
	Setup(false, false)
	if !slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("default mode should enable INFO")
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("default mode should suppress DEBUG")
	}
}
