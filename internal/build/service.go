package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quartzite/crossbuild/internal/artifacts"
)

// ImageService drives toolchain image builds.
type ImageService struct {
	Logger       *slog.Logger
	Settings     ProjectSettings
	Targets      TargetRepository
	ImageBuilder ImageBuilder

	// HostCheck, when configured, verifies host prerequisites. It runs only
	// after the target key resolves, so unsupported targets never touch the
	// container runtime.
	HostCheck func(context.Context) error
}

// Run resolves the requested target and builds its toolchain image.
//
// Unknown targets fail before the image builder is invoked.
func (s *ImageService) Run(ctx context.Context, request *ImageRequest) error {
	if s.Targets == nil {
		return errors.New("target repository is not configured")
	}
	if s.ImageBuilder == nil {
		return errors.New("image builder is not configured")
	}

	key := s.Settings.resolveTarget(request.Target)
	logger := s.logger().With("target", key)

	target, err := s.Targets.Get(key)
	if err != nil {
		return err
	}

	if s.HostCheck != nil {
		if err := s.HostCheck(ctx); err != nil {
			return err
		}
	}

	logger.Info("starting toolchain image build",
		"base_image", target.BaseImage,
		"tag", ImageTag(s.Settings.ImagePrefix, target.Key),
	)

	if err := s.ImageBuilder.BuildImage(ctx, BuildContext{Target: target, Settings: s.Settings}); err != nil {
		return err
	}

	logger.Info("toolchain image built")
	return nil
}

func (s *ImageService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// CompileService drives containerized compilations.
type CompileService struct {
	Logger        *slog.Logger
	Settings      ProjectSettings
	Targets       TargetRepository
	CompileRunner CompileRunner

	// HostCheck, when configured, verifies host prerequisites. It runs only
	// after the target key resolves, so unsupported targets never touch the
	// container runtime.
	HostCheck func(context.Context) error

	// ArtifactStore, when configured, records the produced binary.
	ArtifactStore artifacts.ArtifactStore

	// WorkDir overrides the working directory used to derive the default
	// output directory. Defaults to the process working directory.
	WorkDir string
}

// Run compiles the project for the requested target and returns the recorded
// artifact.
//
// The output directory is created idempotently before the container runs.
// After a successful run the expected binary must exist in the output
// directory; its absence is an explicit failure rather than a silently empty
// result.
func (s *CompileService) Run(ctx context.Context, request *CompileRequest) (artifacts.Artifact, error) {
	if s.Targets == nil {
		return artifacts.Artifact{}, errors.New("target repository is not configured")
	}
	if s.CompileRunner == nil {
		return artifacts.Artifact{}, errors.New("compile runner is not configured")
	}

	key := s.Settings.resolveTarget(request.Target)
	logger := s.logger().With("target", key)

	target, err := s.Targets.Get(key)
	if err != nil {
		return artifacts.Artifact{}, err
	}

	if s.HostCheck != nil {
		if err := s.HostCheck(ctx); err != nil {
			return artifacts.Artifact{}, err
		}
	}

	outputDir, err := s.resolveOutputDir(request.OutputDir, target.Key)
	if err != nil {
		return artifacts.Artifact{}, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return artifacts.Artifact{}, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	logger.Info("starting containerized compilation", "output_dir", outputDir)

	buildContext := BuildContext{Target: target, Settings: s.Settings}
	if err := s.CompileRunner.Compile(ctx, buildContext, outputDir); err != nil {
		return artifacts.Artifact{}, err
	}

	binaryPath := filepath.Join(outputDir, s.Settings.Binary)
	if _, err := os.Stat(binaryPath); err != nil {
		return artifacts.Artifact{}, fmt.Errorf("%w: expected %s", ErrArtifactMissing, binaryPath)
	}

	artifact, err := s.recordArtifact(binaryPath, target)
	if err != nil {
		return artifacts.Artifact{}, err
	}

	logger.Info("compilation completed", "binary", binaryPath)
	return artifact, nil
}

// resolveOutputDir applies the default derivation: <workdir>/out/<target>.
func (s *CompileService) resolveOutputDir(requested, target string) (string, error) {
	if requested != "" {
		return requested, nil
	}

	workDir := s.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		workDir = cwd
	}
	return filepath.Join(workDir, "out", target), nil
}

func (s *CompileService) recordArtifact(binaryPath string, target TargetSpecification) (artifacts.Artifact, error) {
	if s.ArtifactStore == nil {
		return artifacts.Artifact{
			Kind: artifacts.BinaryArtifact,
			URI:  artifacts.FileURI(binaryPath),
		}, nil
	}

	return s.ArtifactStore.StoreArtifact(binaryPath, artifacts.BinaryArtifact, map[string]any{
		"target":     target.Key,
		"base_image": target.BaseImage,
		"image_tag":  ImageTag(s.Settings.ImagePrefix, target.Key),
	})
}

func (s *CompileService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// resolveTarget substitutes the project default when no target is requested.
func (settings ProjectSettings) resolveTarget(requested string) string {
	if requested != "" {
		return requested
	}
	return settings.DefaultTarget
}
