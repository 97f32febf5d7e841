// Package buildinfo reports which microviz build is running.
//
// Release builds stamp the variables with ldflags, for example
//
//	-X github.com/matzehuels/microviz/pkg/buildinfo.Version=v0.3.0
//
// Builds without ldflags (go install, go run) fall back to the module
// version and VCS settings recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// Stamped at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build description. It is also served by the HTTP
// health endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go"`
}

var (
	resolved    Info
	resolveOnce sync.Once
)

// Get returns the build description, filling unstamped fields from the
// embedded module build info where it has them.
func Get() Info {
	resolveOnce.Do(func() {
		resolved = resolve(Version, Commit, Date, debug.ReadBuildInfo)
	})
	return resolved
}

func resolve(version, commit, date string, read func() (*debug.BuildInfo, bool)) Info {
	info := Info{Version: version, Commit: commit, Date: date, GoVersion: runtime.Version()}
	bi, ok := read()
	if !ok || bi == nil {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}

// Short returns the commit shortened to 7 characters.
func (i Info) Short() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s (%s, built %s, %s)\n", i.Version, i.Short(), i.Date, i.GoVersion)
}
