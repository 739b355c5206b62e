// Package version reports build metadata stamped in with -ldflags
package version

import "runtime/debug"

// BuildInfo describes the running binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the stamped values, falling back to the module build info for
// the version when nothing was stamped.
//
//	-ldflags "-X 'vesselq/internal/core/version.version=v0.3.0' -X 'vesselq/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	v := version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return BuildInfo{
		Service: Service,
		Version: v,
		Commit:  commit,
		Date:    date,
	}
}

// Service is the name reported by /version and the CLI
var Service = "vesselq"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
