// Package version reports the build version of correctme binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/correctme/correctme/internal/version.Version=v0.3.0 \
//	                   -X github.com/correctme/correctme/internal/version.Commit=abc1234"
var (
	Version = ""
	Commit  = ""
)

const shortHashLen = 7

func init() {
	if Version == "" || Commit == "" {
		fillFromBuildInfo(debug.ReadBuildInfo())
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fillFromBuildInfo takes the module version (set by go install pkg@vX) and
// the VCS stamp (set when built inside a checkout).
func fillFromBuildInfo(info *debug.BuildInfo, ok bool) {
	if !ok || info == nil {
		return
	}

	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit != "" {
		return
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return
	}
	if len(revision) > shortHashLen {
		revision = revision[:shortHashLen]
	}
	if dirty {
		revision += "-dirty"
	}
	Commit = revision
}

// Full returns the version with commit and platform, for `correctme version`
func Full() string {
	return fmt.Sprintf("%s (commit: %s, %s/%s)", Version, Commit, runtime.GOOS, runtime.GOARCH)
}
