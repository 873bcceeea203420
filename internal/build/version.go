package build

import "fmt"

// Set at link time, e.g.
//
//	go build -ldflags "-X github.com/rohmanhakim/aocinput/internal/build.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Details is the text printed by `aocinput --version`.
func Details() string {
	return fmt.Sprintf("aocinput %s\ncommit: %s\nbuilt: %s\n", Version, Commit, BuildTime)
}
