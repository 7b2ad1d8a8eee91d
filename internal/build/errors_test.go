package build

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUnsupportedTargetErrorMessage(t *testing.T) {
	t.Parallel()

	err := &UnsupportedTargetError{
		Key:       "mips64-unknown-linux-gnu",
		Supported: []string{"x86_64-unknown-linux-musl", "aarch64-unknown-linux-musl"},
	}

	message := err.Error()
	if !strings.HasPrefix(message, "Unsupported target: mips64-unknown-linux-gnu") {
		t.Fatalf("unexpected message prefix: %q", message)
	}
	if !strings.Contains(message, "aarch64-unknown-linux-musl") {
		t.Fatalf("expected message to list supported targets, got %q", message)
	}
}

func TestExitStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"external failure", &ExternalError{Tool: "docker", ExitCode: 125}, 125},
		{"wrapped external failure", fmt.Errorf("compile: %w", &ExternalError{Tool: "docker", ExitCode: 2}), 2},
		{"unsupported target", &UnsupportedTargetError{Key: "nope"}, 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitStatus(tc.err); got != tc.want {
				t.Fatalf("ExitStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
