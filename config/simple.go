// Package config wires the build services together for CLI use.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/quartzite/crossbuild/internal/artifacts"
	"github.com/quartzite/crossbuild/internal/build"
	"github.com/quartzite/crossbuild/internal/build/adapters/docker"
	"github.com/quartzite/crossbuild/internal/build/repositories"
	"github.com/quartzite/crossbuild/internal/logging"
	"github.com/quartzite/crossbuild/internal/repositories/local"
	"github.com/quartzite/crossbuild/internal/setup"
)

// DefaultSettingsFile is the project settings file looked up in the working
// directory before falling back to the XDG config home.
const DefaultSettingsFile = "crossbuild.yaml"

// DefaultMetadataDir is where artifact records are written.
var DefaultMetadataDir = filepath.Join(xdg.DataHome, "crossbuild", "artifacts")

// LoadSettings resolves the project settings.
//
// An explicit path must exist. Otherwise the settings file is searched in the
// working directory, then in the XDG config home; when neither exists the
// defaults apply. File contents overlay the defaults, so partial files are
// fine.
func LoadSettings(path string) (build.ProjectSettings, error) {
	settings := build.DefaultSettings()

	resolved, required := path, path != ""
	if resolved == "" {
		resolved = discoverSettingsFile()
	}
	if resolved == "" {
		return settings, nil
	}

	payload, err := os.ReadFile(resolved)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return build.ProjectSettings{}, fmt.Errorf("read settings file %s: %w", resolved, err)
	}

	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return build.ProjectSettings{}, fmt.Errorf("parse settings file %s: %w", resolved, err)
	}
	return settings, nil
}

// BuildImage builds the toolchain image for the requested target.
func BuildImage(ctx context.Context, target, settingsPath string, logger *slog.Logger) error {
	logger = logging.Ensure(logger).With("component", "config.simple")

	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	targetRepository, err := newTargetRepository(settings)
	if err != nil {
		return err
	}

	service := build.ImageService{
		Logger:   logger.With("service", "image"),
		Settings: settings,
		Targets:  targetRepository,
		ImageBuilder: &docker.Builder{
			Logger: logger.With("driver", "docker"),
		},
		HostCheck: setup.Verify,
	}

	return service.Run(ctx, &build.ImageRequest{Target: target})
}

// RunBuild compiles the project for the requested target, leaving the binary
// in outputDir (or the derived default) and recording an artifact.
func RunBuild(ctx context.Context, target, outputDir, settingsPath string, logger *slog.Logger) (artifacts.Artifact, error) {
	logger = logging.Ensure(logger).With("component", "config.simple")

	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return artifacts.Artifact{}, err
	}

	targetRepository, err := newTargetRepository(settings)
	if err != nil {
		return artifacts.Artifact{}, err
	}

	service := build.CompileService{
		Logger:   logger.With("service", "compile"),
		Settings: settings,
		Targets:  targetRepository,
		CompileRunner: &docker.Runner{
			Logger: logger.With("driver", "docker"),
		},
		HostCheck:     setup.Verify,
		ArtifactStore: &local.LocalArtifactStore{BaseDir: DefaultMetadataDir},
	}

	return service.Run(ctx, &build.CompileRequest{Target: target, OutputDir: outputDir})
}

// ListTargets returns the supported target specifications.
func ListTargets(settingsPath string) ([]build.TargetSpecification, error) {
	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	targetRepository, err := newTargetRepository(settings)
	if err != nil {
		return nil, err
	}
	return targetRepository.ListAll()
}

func newTargetRepository(settings build.ProjectSettings) (*repositories.EmbeddedTargetRepository, error) {
	repo := repositories.NewEmbeddedTargetRepository()
	if settings.TargetsFile != "" {
		if err := repo.MergeFile(settings.TargetsFile); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func discoverSettingsFile() string {
	if _, err := os.Stat(DefaultSettingsFile); err == nil {
		return DefaultSettingsFile
	}
	if path, err := xdg.SearchConfigFile(filepath.Join("crossbuild", DefaultSettingsFile)); err == nil {
		return path
	}
	return ""
}
