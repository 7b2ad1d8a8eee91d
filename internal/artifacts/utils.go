package artifacts

import (
	"errors"
	"strings"
)

// PathFromURI extracts the filesystem path from a file:// URI.
func PathFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, "file://") {
		return "", errors.New("unsupported URI scheme")
	}
	return strings.TrimPrefix(uri, "file://"), nil
}

// FileURI builds a file:// URI for a filesystem path.
func FileURI(path string) string {
	return "file://" + path
}
