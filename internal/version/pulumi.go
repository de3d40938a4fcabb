package version

import (
	"context"
	"regexp"
	"strings"

	"github.com/limgen/cli/internal/pulumi"
	"github.com/limgen/cli/internal/shell"
)

var semverRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// DetectPulumiBinary looks up pulumi on PATH and asks it for its version.
func DetectPulumiBinary(ctx context.Context, runner shell.Runner) PulumiBinaryInfo {
	path, ok := shell.LookPath(pulumi.Binary)
	if !ok {
		return PulumiBinaryInfo{Message: "pulumi not found in PATH"}
	}
	return detect(ctx, path, runner)
}

func detect(ctx context.Context, path string, runner shell.Runner) PulumiBinaryInfo {
	info := PulumiBinaryInfo{Path: path, Found: true}
	out, err := pulumi.NewClient(runner).Version(ctx)
	if err != nil {
		info.Message = "failed to run pulumi version"
		return info
	}
	v, ok := extractVersion(out)
	if !ok {
		info.Message = "unrecognized output: " + out
		return info
	}
	info.Version = v
	return info
}

// extractVersion finds a semantic version in output and adds a "v" prefix.
func extractVersion(output string) (string, bool) {
	match := semverRegex.FindString(output)
	if match == "" {
		return "", false
	}
	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}
	return match, true
}
