package build

import "context"

// ImageBuilder produces the tagged toolchain image for a target.
type ImageBuilder interface {
	BuildImage(ctx context.Context, buildContext BuildContext) error
}

// CompileRunner runs the containerized compilation for a target, leaving the
// binary in outputDir on the host.
type CompileRunner interface {
	Compile(ctx context.Context, buildContext BuildContext, outputDir string) error
}
