package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/quartzite/crossbuild/internal/build"
)

// CommandRunner executes external commands, streaming output to the provided
// writers. Implementations report non-zero exits as *build.ExternalError so
// callers can propagate the underlying tool's exit status.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner runs commands on the host via os/exec.
type ExecRunner struct{}

// Run executes the command and waits for it to exit.
func (ExecRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &build.ExternalError{Tool: name, ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("run %s: %w", name, err)
}
