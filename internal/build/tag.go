package build

// ImageTag derives the image tag for a target key.
//
// The image build and compile flows both derive the tag here so the two can
// never disagree about which image a target maps to.
func ImageTag(prefix, target string) string {
	return prefix + ":" + target
}
