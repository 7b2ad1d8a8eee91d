package setup

import "log/slog"

// packageLogger carries the logger for host verification diagnostics. When
// unset, checks fall back to the process default so they work without wiring.
var packageLogger *slog.Logger

// SetLogger routes setup diagnostics through the given logger. A nil logger
// reverts to the process default.
func SetLogger(logger *slog.Logger) {
	packageLogger = logger
}

func getLogger() *slog.Logger {
	if packageLogger == nil {
		return slog.Default()
	}
	return packageLogger
}
