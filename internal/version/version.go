package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/younsl/volsweep/internal/version.version=v0.1.0 ..."
var (
	version   = "dev"
	buildDate = "unknown" // RFC3339
	gitCommit = "unknown"
)

// BuildInfo contains version and build details.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
	GoVersion string `json:"goVersion"`
}

// Get returns the build information.
func Get() BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
	}
}

// String formats the build information for `volsweep --version`
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (built: %s, commit: %s, %s)", b.Version, b.BuildDate, b.GitCommit, b.GoVersion)
}
