package docker

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/quartzite/crossbuild/internal/build"
)

// DefaultBinary is the docker client binary invoked by the adapters.
const DefaultBinary = "docker"

// Ensure Builder satisfies the image builder interface.
var _ build.ImageBuilder = (*Builder)(nil)

// Builder produces toolchain images via docker build.
//
// The target's base image and key are passed to the build as the BASE_IMAGE
// and TARGET build arguments, and the result is tagged with the shared
// tag derivation so the compile flow finds it.
type Builder struct {
	Logger *slog.Logger
	Runner CommandRunner
	Binary string // docker client binary, DefaultBinary when empty

	Stdout io.Writer // docker build output, os.Stdout when nil
	Stderr io.Writer // docker build diagnostics, os.Stderr when nil
}

// BuildImage runs docker build for the target described by buildContext.
func (b *Builder) BuildImage(ctx context.Context, buildContext build.BuildContext) error {
	tag := build.ImageTag(buildContext.Settings.ImagePrefix, buildContext.Target.Key)
	args := buildImageArgs(buildContext, tag)

	b.logger().Info("running docker build",
		"target", buildContext.Target.Key,
		"base_image", buildContext.Target.BaseImage,
		"tag", tag,
		"command", commandString(binaryOrDefault(b.Binary), args),
	)

	return runnerOrDefault(b.Runner).Run(ctx, binaryOrDefault(b.Binary), args,
		writerOrDefault(b.Stdout, os.Stdout),
		writerOrDefault(b.Stderr, os.Stderr),
	)
}

func (b *Builder) logger() *slog.Logger {
	if b != nil && b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// buildImageArgs assembles the docker build invocation for a target.
func buildImageArgs(buildContext build.BuildContext, tag string) []string {
	return []string{
		"build",
		"--file", buildContext.Settings.Dockerfile,
		"--build-arg", "BASE_IMAGE=" + buildContext.Target.BaseImage,
		"--build-arg", "TARGET=" + buildContext.Target.Key,
		"--tag", tag,
		buildContext.Settings.ContextDir,
	}
}

func binaryOrDefault(binary string) string {
	if binary != "" {
		return binary
	}
	return DefaultBinary
}

func runnerOrDefault(runner CommandRunner) CommandRunner {
	if runner != nil {
		return runner
	}
	return ExecRunner{}
}

func writerOrDefault(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

func commandString(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}
