package local

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quartzite/crossbuild/internal/artifacts"
)

// LocalArtifactStore records artifact metadata as JSON documents under BaseDir.
//
// The artifact file itself stays where the build produced it; the store keeps
// a record referencing it by file:// URI together with a sha256 checksum.
type LocalArtifactStore struct {
	BaseDir string
}

// StoreArtifact checksums the artifact and records its metadata.
func (store *LocalArtifactStore) StoreArtifact(artifactPath string, kind artifacts.ArtifactKind, metadata map[string]any) (artifacts.Artifact, error) {
	if store.BaseDir == "" {
		return artifacts.Artifact{}, errors.New("base directory is not configured")
	}
	if artifactPath == "" {
		return artifacts.Artifact{}, errors.New("artifact path is required")
	}

	absPath, err := filepath.Abs(artifactPath)
	if err != nil {
		return artifacts.Artifact{}, err
	}

	checksum, err := checksumFile(absPath)
	if err != nil {
		return artifacts.Artifact{}, err
	}

	if err := os.MkdirAll(store.BaseDir, 0o755); err != nil {
		return artifacts.Artifact{}, err
	}

	artifact := artifacts.Artifact{
		ID:          uuid.NewString(),
		Kind:        kind,
		URI:         artifacts.FileURI(absPath),
		Checksum:    &checksum,
		ContentType: detectContentType(absPath),
		Metadata:    cloneMetadata(metadata),
	}

	if err := store.writeRecord(artifact); err != nil {
		return artifacts.Artifact{}, err
	}

	return artifact, nil
}

// RemoveArtifact deletes the artifact file and its metadata record.
func (store *LocalArtifactStore) RemoveArtifact(artifact artifacts.Artifact) error {
	path, err := artifacts.PathFromURI(artifact.URI)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.Remove(store.recordPath(artifact.ID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// Clear removes all metadata records under the store's base directory.
func (store *LocalArtifactStore) Clear() error {
	entries, err := os.ReadDir(store.BaseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(store.BaseDir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (store *LocalArtifactStore) writeRecord(artifact artifacts.Artifact) error {
	payload, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(store.recordPath(artifact.ID), payload, 0o644)
}

func (store *LocalArtifactStore) recordPath(artifactID string) string {
	return filepath.Join(store.BaseDir, artifactID+".json")
}

func checksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digest := sha256.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", err
	}
	return "sha256:" + hex.EncodeToString(digest.Sum(nil)), nil
}

func detectContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return "application/gzip"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func cloneMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	cloned := make(map[string]any, len(metadata))
	for key, value := range metadata {
		cloned[key] = value
	}
	return cloned
}
