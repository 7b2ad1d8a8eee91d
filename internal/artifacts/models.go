package artifacts

type ArtifactKind string

const (
	BinaryArtifact ArtifactKind = "binary" // Artifact for compiled binaries
	TextArtifact   ArtifactKind = "text"   // Artifact for generic text artifacts
)

type Artifact struct {
	ID   string
	Kind ArtifactKind
	URI  string

	Checksum    *string
	ContentType string
	Metadata    map[string]any
}
