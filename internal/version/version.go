// Package version holds build metadata injected at link time.
package version

import "fmt"

// Version is set with
// go build -ldflags "-X git.home.luguber.info/inful/snippetdoc/internal/version.Version=v0.3.0".
var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("snippetdoc %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
