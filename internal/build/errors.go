package build

import (
	"errors"
	"fmt"
	"strings"
)

// ErrArtifactMissing indicates the compiler reported success but the expected
// binary was not present in the output directory afterwards.
var ErrArtifactMissing = errors.New("artifact missing after build")

// UnsupportedTargetError reports a target key absent from the registry.
//
// It is returned before any external process is invoked.
type UnsupportedTargetError struct {
	Key       string
	Supported []string
}

// Error returns the user-facing message for the unsupported key.
func (e *UnsupportedTargetError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("Unsupported target: %s", e.Key)
	}
	return fmt.Sprintf("Unsupported target: %s (supported: %s)", e.Key, strings.Join(e.Supported, ", "))
}

// ExternalError reports a non-zero exit from an external tool invocation.
type ExternalError struct {
	Tool     string
	ExitCode int
}

// Error returns the error message.
func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}

// ExitStatus returns the process exit status to report for err.
//
// External tool failures propagate their own exit code verbatim; every other
// error maps to 1.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var external *ExternalError
	if errors.As(err, &external) && external.ExitCode > 0 {
		return external.ExitCode
	}
	return 1
}
