// Package version holds build metadata injected with ldflags:
//
//	-X github.com/jmylchreest/huekit/internal/version.Version=x.y.z
//	-X github.com/jmylchreest/huekit/internal/version.Commit=$(git rev-parse HEAD)
//	-X github.com/jmylchreest/huekit/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)
package version

import (
	"fmt"
	"runtime"
)

// Name is the program name used in version strings and the User-Agent.
const Name = "huekit"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the build metadata as reported by `huekit version --json` and
// the server's /health endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ShortCommit returns the first eight characters of the commit hash.
func (i Info) ShortCommit() string {
	return i.Commit[:min(len(i.Commit), 8)]
}

func (i Info) String() string {
	if i.Commit == "unknown" || i.Date == "unknown" {
		return fmt.Sprintf("%s %s (%s, %s)", Name, i.Version, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("%s %s (commit %s, built %s, %s, %s)",
		Name, i.Version, i.ShortCommit(), i.Date, i.GoVersion, i.Platform)
}

// UserAgent returns the User-Agent sent on outbound requests.
func UserAgent() string {
	return Name + "/" + Version
}
