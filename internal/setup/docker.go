package setup

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DockerBinary is the docker client binary looked up on PATH.
var DockerBinary = "docker"

// Verify checks that the docker client is installed and its daemon responds.
func Verify(ctx context.Context) error {
	path, err := exec.LookPath(DockerBinary)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("docker client %q not found in PATH", DockerBinary)
		}
		return fmt.Errorf("locate docker client: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, "version", "--format", "{{.Server.Version}}")
	output, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("docker daemon is not reachable (is it running?): %w", err)
	}

	getLogger().Debug("docker daemon reachable",
		"client", path,
		"server_version", strings.TrimSpace(string(output)),
	)
	return nil
}
