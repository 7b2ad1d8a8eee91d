package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quartzite/crossbuild/config"
	"github.com/quartzite/crossbuild/internal/build"
	"github.com/quartzite/crossbuild/internal/logging"
	"github.com/quartzite/crossbuild/internal/setup"
)

const defaultLogLevel = "info"

// version is set via -ldflags at release time.
var version = "dev"

func main() {
	var levelVar slog.LevelVar
	levelVar.Set(slog.LevelInfo)

	logger := logging.NewCLI(os.Stderr, &levelVar)
	slog.SetDefault(logger)
	setup.SetLogger(logger.With("component", "setup"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(&levelVar)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("command interrupted", "error", err)
			os.Exit(130)
		}
		slog.Error("command execution failed", "error", err)
		os.Exit(build.ExitStatus(err))
	}
}

func newRootCommand(levelVar *slog.LevelVar) *cobra.Command {
	var (
		logLevel     = defaultLogLevel
		logJSON      bool
		settingsPath string
	)

	root := &cobra.Command{
		Use:           "crossbuild",
		Short:         "Cross-compile a binary for a target platform inside a Docker container",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Set log verbosity (debug, info, warning, error)")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON instead of the CLI format")
	root.PersistentFlags().StringVar(&settingsPath, "config", "", "Path to the project settings file (default: ./crossbuild.yaml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := parseLogLevel(logLevel)
		if err != nil {
			return err
		}
		if levelVar != nil {
			levelVar.Set(level)
		}
		if logJSON {
			logger := logging.New(logging.ModeJSON, os.Stderr, levelVar)
			slog.SetDefault(logger)
			setup.SetLogger(logger.With("component", "setup"))
		}
		return nil
	}

	root.AddCommand(
		newBuildImageCommand(&settingsPath),
		newBuildCommand(&settingsPath),
		newTargetsCommand(&settingsPath),
		newDoctorCommand(),
		newVersionCommand(),
	)
	return root
}

func newBuildImageCommand(settingsPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "build-image [target]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Build the toolchain image for a target",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := optionalArg(args, 0)
			logger := slog.Default().With("command", "build-image")

			if err := config.BuildImage(cmd.Context(), target, *settingsPath, logger); err != nil {
				logger.Error("image build failed", "error", err)
				return err
			}

			logger.Info("image build completed")
			return nil
		},
	}
}

func newBuildCommand(settingsPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "build [target] [output-dir]",
		Args:  cobra.MaximumNArgs(2),
		Short: "Compile the project for a target and copy the binary to the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := optionalArg(args, 0)
			outputDir := optionalArg(args, 1)
			logger := slog.Default().With("command", "build")

			artifact, err := config.RunBuild(cmd.Context(), target, outputDir, *settingsPath, logger)
			if err != nil {
				logger.Error("build failed", "error", err)
				return err
			}

			logger.Info("build completed", "artifact", artifact.URI)
			return nil
		},
	}
}

func newTargetsCommand(settingsPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List supported targets and their toolchain images",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := config.ListTargets(*settingsPath)
			if err != nil {
				slog.Error("listing targets failed", "error", err)
				return err
			}

			for _, target := range targets {
				fmt.Printf("%s\t%s\n", target.Key, target.BaseImage)
			}
			return nil
		},
	}
}

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Verify that the host can run containerized builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup.Verify(cmd.Context()); err != nil {
				slog.Error("host verification failed", "error", err)
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("crossbuild %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

func optionalArg(args []string, index int) string {
	if index < len(args) {
		return strings.TrimSpace(args[index])
	}
	return ""
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}
