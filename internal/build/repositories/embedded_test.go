package repositories

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quartzite/crossbuild/internal/build"
)

func TestRepositoryHasEntries(t *testing.T) {
	t.Parallel()

	repo := NewEmbeddedTargetRepository()
	targets, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(targets) == 0 {
		t.Fatalf("expected at least one embedded target")
	}
}

func TestRepositoryResolvesKnownTargets(t *testing.T) {
	t.Parallel()

	repo := NewEmbeddedTargetRepository()

	cases := []struct {
		key       string
		baseImage string
	}{
		{"x86_64-unknown-linux-musl", "messense/rust-musl-cross:x86_64-musl"},
		{"aarch64-unknown-linux-musl", "messense/rust-musl-cross:aarch64-musl"},
		{"armv7-unknown-linux-musleabihf", "messense/rust-musl-cross:armv7-musleabihf"},
	}

	for _, tc := range cases {
		target, err := repo.Get(tc.key)
		if err != nil {
			t.Errorf("Get(%q) error = %v", tc.key, err)
			continue
		}
		if target.BaseImage != tc.baseImage {
			t.Errorf("Get(%q) base image = %q, want %q", tc.key, target.BaseImage, tc.baseImage)
		}
	}
}

func TestRepositoryRejectsUnknownTarget(t *testing.T) {
	t.Parallel()

	repo := NewEmbeddedTargetRepository()

	_, err := repo.Get("riscv64gc-unknown-linux-gnu")

	var unsupported *build.UnsupportedTargetError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedTargetError, got %v", err)
	}
	if !strings.Contains(err.Error(), "riscv64gc-unknown-linux-gnu") {
		t.Fatalf("expected message to contain the offending key, got %q", err.Error())
	}
}

func TestRepositoryListOrderIsStable(t *testing.T) {
	t.Parallel()

	first, err := NewEmbeddedTargetRepository().ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	second, err := NewEmbeddedTargetRepository().ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("list lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key != second[i].Key {
			t.Fatalf("list order differs at %d: %q vs %q", i, first[i].Key, second[i].Key)
		}
	}
}

func TestMergeFileExtendsAndOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "targets.yaml")
	payload := `targets:
  - key: riscv64gc-unknown-linux-gnu
    base_image: example/riscv-cross:latest
  - key: aarch64-unknown-linux-musl
    base_image: example/aarch64-cross:override
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}

	repo := NewEmbeddedTargetRepository()
	if err := repo.MergeFile(path); err != nil {
		t.Fatalf("MergeFile() error = %v", err)
	}

	added, err := repo.Get("riscv64gc-unknown-linux-gnu")
	if err != nil {
		t.Fatalf("expected merged target to resolve: %v", err)
	}
	if added.BaseImage != "example/riscv-cross:latest" {
		t.Fatalf("unexpected base image: %q", added.BaseImage)
	}

	overridden, err := repo.Get("aarch64-unknown-linux-musl")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if overridden.BaseImage != "example/aarch64-cross:override" {
		t.Fatalf("expected override to win, got %q", overridden.BaseImage)
	}
}

func TestMergeFileRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "targets.yaml")
	payload := `targets:
  - key: missing-image
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}

	repo := NewEmbeddedTargetRepository()
	if err := repo.MergeFile(path); err == nil {
		t.Fatalf("expected error for target without base_image")
	}
}
