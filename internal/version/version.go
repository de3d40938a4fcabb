// Package version provides version information for the limgen CLI.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version.
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// CUESDKVersion is the CUE SDK used to validate configuration and metadata.
const CUESDKVersion = "v0.15.4"

// Info contains version information.
type Info struct {
	Version       string `json:"version"`
	GitCommit     string `json:"gitCommit"`
	BuildDate     string `json:"buildDate"`
	GoVersion     string `json:"goVersion"`
	CUESDKVersion string `json:"cueSDKVersion"`
}

// PulumiBinaryInfo describes the pulumi CLI found on PATH.
type PulumiBinaryInfo struct {
	Version string `json:"version,omitempty"`
	Path    string `json:"path,omitempty"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: CUESDKVersion,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("limgen:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n  CUE SDK:  %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.CUESDKVersion)
}

func (p PulumiBinaryInfo) String() string {
	switch {
	case !p.Found:
		return "  Version: not found\n  Path:    -"
	case p.Version == "":
		return fmt.Sprintf("  Version: unknown (%s)\n  Path:    %s", p.Message, p.Path)
	default:
		return fmt.Sprintf("  Version: %s\n  Path:    %s", p.Version, p.Path)
	}
}

// FullVersionString returns the CLI and pulumi version information.
func FullVersionString(info Info, pulumi PulumiBinaryInfo) string {
	return fmt.Sprintf("%s\n\nPulumi:\n%s", info.String(), pulumi.String())
}
