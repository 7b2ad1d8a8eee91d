package docker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quartzite/crossbuild/internal/build"
)

// Mount points inside the compile container.
const (
	workspaceMount = "/workspace"
	artifactMount  = "/artifacts"

	// cargoRegistryPath is where the optional cache volume is mounted.
	cargoRegistryPath = "/root/.cargo/registry"
)

// Ensure Runner satisfies the compile runner interface.
var _ build.CompileRunner = (*Runner)(nil)

// Runner compiles the project inside a disposable container via docker run.
//
// The build context is bind-mounted read-write at /workspace, the host output
// directory at /artifacts. The compile command runs scoped to the target and
// the produced binary is copied onto the artifact mount before the container
// exits.
type Runner struct {
	Logger *slog.Logger
	Runner CommandRunner
	Binary string // docker client binary, DefaultBinary when empty

	Stdout io.Writer // compiler output, os.Stdout when nil
	Stderr io.Writer // compiler diagnostics, os.Stderr when nil
}

// Compile runs the containerized compilation, leaving the binary in outputDir.
func (r *Runner) Compile(ctx context.Context, buildContext build.BuildContext, outputDir string) error {
	tag := build.ImageTag(buildContext.Settings.ImagePrefix, buildContext.Target.Key)

	workspace, err := filepath.Abs(buildContext.Settings.ContextDir)
	if err != nil {
		return fmt.Errorf("resolve context dir: %w", err)
	}
	output, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	name := containerName(buildContext.Target.Key)
	script := compileScript(buildContext)
	args := runArgs(buildContext, tag, name, workspace, output, script)

	r.logger().Info("running containerized build",
		"target", buildContext.Target.Key,
		"tag", tag,
		"container", name,
		"output_dir", output,
		"command", commandString(binaryOrDefault(r.Binary), args),
	)

	return runnerOrDefault(r.Runner).Run(ctx, binaryOrDefault(r.Binary), args,
		writerOrDefault(r.Stdout, os.Stdout),
		writerOrDefault(r.Stderr, os.Stderr),
	)
}

func (r *Runner) logger() *slog.Logger {
	if r != nil && r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// runArgs assembles the docker run invocation for a compile.
func runArgs(buildContext build.BuildContext, tag, name, workspace, output, script string) []string {
	args := []string{
		"run",
		"--rm",
		"--name", name,
		"--volume", workspace + ":" + workspaceMount,
		"--volume", output + ":" + artifactMount,
	}

	if cache := buildContext.Settings.CacheVolume; cache != "" {
		args = append(args, "--volume", cache+":"+cargoRegistryPath)
	}

	args = append(args,
		"--workdir", workspaceMount,
		tag,
		"sh", "-c", script,
	)
	return args
}

// compileScript composes the in-container command: compile for the target,
// then copy the produced binary onto the artifact mount.
func compileScript(buildContext build.BuildContext) string {
	command := buildContext.Settings.BuildCommand
	if command == "" {
		command = "cargo build --release --target " + buildContext.Target.Key
	} else {
		command = strings.ReplaceAll(command, "{target}", buildContext.Target.Key)
	}

	artifact := buildContext.Target.ArtifactPath
	if artifact == "" {
		artifact = path.Join("target", buildContext.Target.Key, "release", buildContext.Settings.Binary)
	}

	// Quoted so artifact paths or binary names with spaces survive sh -c.
	return fmt.Sprintf("%s && cp '%s' '%s/'", command, artifact, artifactMount)
}

// containerName derives a unique, target-scoped container name so concurrent
// runs for different targets never collide.
func containerName(target string) string {
	return fmt.Sprintf("crossbuild-%s-%s", target, uuid.NewString()[:8])
}
