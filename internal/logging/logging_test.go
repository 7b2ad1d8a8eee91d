package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestCLIHandlerFormat(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	logger := NewCLI(&out, slog.LevelInfo)

	logger.Info("build completed", "target", "aarch64-unknown-linux-musl", "attempts", 1)

	line := out.String()
	if !strings.HasPrefix(line, "INFO ") {
		t.Fatalf("expected level prefix, got %q", line)
	}
	if !strings.Contains(line, "build completed") {
		t.Fatalf("expected message, got %q", line)
	}
	if !strings.Contains(line, "target=aarch64-unknown-linux-musl") {
		t.Fatalf("expected string attribute, got %q", line)
	}
	if !strings.Contains(line, "attempts=1") {
		t.Fatalf("expected int attribute, got %q", line)
	}
}

func TestCLIHandlerHonorsLevel(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	logger := NewCLI(&out, slog.LevelWarn)

	logger.Info("suppressed")
	logger.Warn("emitted")

	if strings.Contains(out.String(), "suppressed") {
		t.Fatalf("expected info record to be suppressed: %q", out.String())
	}
	if !strings.Contains(out.String(), "emitted") {
		t.Fatalf("expected warn record to be emitted: %q", out.String())
	}
}

func TestCLIHandlerFlattensGroups(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	logger := NewCLI(&out, slog.LevelInfo).WithGroup("docker")

	logger.Info("ran", "exit_code", 0)

	if !strings.Contains(out.String(), "docker.exit_code=0") {
		t.Fatalf("expected dotted group key, got %q", out.String())
	}
}

func TestWithPersistsAttributes(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	logger := NewCLI(&out, slog.LevelInfo).With("component", "build")

	logger.Info("starting")

	if !strings.Contains(out.String(), "component=build") {
		t.Fatalf("expected persistent attribute, got %q", out.String())
	}
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	if Ensure(nil) == nil {
		t.Fatalf("Ensure(nil) must return the default logger")
	}

	logger := NewCLI(&strings.Builder{}, slog.LevelInfo)
	if Ensure(logger) != logger {
		t.Fatalf("Ensure must return the provided logger")
	}
}

func TestJSONModeEmitsJSON(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	logger := New(ModeJSON, &out, slog.LevelInfo)

	logger.Info("build completed", "target", "x86_64-unknown-linux-musl")

	line := out.String()
	if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"target":"x86_64-unknown-linux-musl"`) {
		t.Fatalf("expected JSON record, got %q", line)
	}
}
