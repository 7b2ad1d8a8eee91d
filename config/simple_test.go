package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir changes the working directory for the duration of the test. It
// mirrors testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func TestLoadSettingsDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	settings, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if settings.Binary != "gdrive" {
		t.Fatalf("unexpected default binary: %q", settings.Binary)
	}
	if settings.ImagePrefix != "gdrive-build" {
		t.Fatalf("unexpected default image prefix: %q", settings.ImagePrefix)
	}
	if settings.DefaultTarget != "x86_64-unknown-linux-musl" {
		t.Fatalf("unexpected default target: %q", settings.DefaultTarget)
	}
}

func TestLoadSettingsOverlaysPartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crossbuild.yaml")
	payload := `binary: mytool
image_prefix: mytool-build
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write settings file: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if settings.Binary != "mytool" {
		t.Fatalf("unexpected binary: %q", settings.Binary)
	}
	if settings.ImagePrefix != "mytool-build" {
		t.Fatalf("unexpected image prefix: %q", settings.ImagePrefix)
	}

	// Omitted fields keep their defaults.
	if settings.DefaultTarget != "x86_64-unknown-linux-musl" {
		t.Fatalf("expected default target to survive overlay, got %q", settings.DefaultTarget)
	}
	if settings.Dockerfile != "Dockerfile" {
		t.Fatalf("expected default dockerfile to survive overlay, got %q", settings.Dockerfile)
	}
}

func TestLoadSettingsDiscoversWorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	payload := `binary: discovered
`
	if err := os.WriteFile(filepath.Join(dir, DefaultSettingsFile), []byte(payload), 0o644); err != nil {
		t.Fatalf("write settings file: %v", err)
	}
	chdir(t, dir)

	settings, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if settings.Binary != "discovered" {
		t.Fatalf("expected working directory file to be picked up, got binary %q", settings.Binary)
	}
}

func TestLoadSettingsRequiresExplicitFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit settings file")
	}
}

func TestLoadSettingsRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crossbuild.yaml")
	if err := os.WriteFile(path, []byte("binary: [unbalanced"), 0o644); err != nil {
		t.Fatalf("write settings file: %v", err)
	}

	if _, err := LoadSettings(path); err == nil {
		t.Fatalf("expected error for malformed settings file")
	}
}
