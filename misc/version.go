// Package misc keeps program identification strings.
package misc

import "runtime/debug"

// Set at link time: -ldflags "-X epubgen/misc.version=... -X epubgen/misc.githash=..."
var (
	version = "dev"
	githash = ""
)

const appName = "epubgen"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from, falling back to build
// info recorded by the toolchain.
func GetGitHash() string {
	if githash != "" {
		return githash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
