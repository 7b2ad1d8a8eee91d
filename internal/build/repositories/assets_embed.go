package repositories

import (
	_ "embed"
)

//go:embed assets/targets.yaml
var embeddedTargets []byte
