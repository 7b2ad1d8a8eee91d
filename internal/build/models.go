package build

// TargetSpecification maps a target key (a platform triple) to the toolchain
// and artifact layout used to cross-compile for it.
type TargetSpecification struct {
	// Key identifies the target, e.g. "aarch64-unknown-linux-musl".
	Key string `yaml:"key"`

	// BaseImage is the toolchain image the target's build image derives from,
	// e.g. "messense/rust-musl-cross:aarch64-musl".
	BaseImage string `yaml:"base_image"`

	// ArtifactPath is where the compiler leaves the binary inside the
	// container, relative to the workspace. Derived from the target key and
	// binary name when empty.
	ArtifactPath string `yaml:"artifact_path,omitempty"`
}

// ProjectSettings defines the project-level build options shared by the image
// build and compile flows.
type ProjectSettings struct {
	// Binary is the name of the compiled binary.
	Binary string `yaml:"binary"`

	// ImagePrefix is the repository part of the derived image tag.
	ImagePrefix string `yaml:"image_prefix"`

	// ContextDir is the docker build context, typically the project root.
	ContextDir string `yaml:"context_dir"`

	// Dockerfile is the toolchain definition file consumed by docker build.
	Dockerfile string `yaml:"dockerfile"`

	// BuildCommand is the compile command run inside the container. The
	// literal "{target}" is replaced with the target key. Defaults to a
	// cargo release build for the target.
	BuildCommand string `yaml:"build_command,omitempty"`

	// DefaultTarget is used when no target is given on the command line.
	DefaultTarget string `yaml:"default_target"`

	// CacheVolume optionally names a docker volume mounted over the cargo
	// registry so dependency downloads survive across runs.
	CacheVolume string `yaml:"cache_volume,omitempty"`

	// TargetsFile optionally points at a YAML file whose targets extend or
	// override the embedded table.
	TargetsFile string `yaml:"targets_file,omitempty"`
}

// DefaultSettings returns the settings used when no project file is present.
func DefaultSettings() ProjectSettings {
	return ProjectSettings{
		Binary:        "gdrive",
		ImagePrefix:   "gdrive-build",
		ContextDir:    ".",
		Dockerfile:    "Dockerfile",
		DefaultTarget: "x86_64-unknown-linux-musl",
	}
}

// BuildContext provides the shared context passed to the build adapters.
type BuildContext struct {
	Target   TargetSpecification
	Settings ProjectSettings
}

// ImageRequest asks for a toolchain image to be built for a target.
type ImageRequest struct {
	Target string
}

// CompileRequest asks for a containerized compilation of the project.
type CompileRequest struct {
	Target    string
	OutputDir string
}
