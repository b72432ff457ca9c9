// Package buildinfo provides build-time version information.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/cloudward/console-gate/internal/infra/buildinfo.Version=v3.2.0"
package buildinfo

// Build-time variables (set via ldflags).
var (
	// Version is the semantic version surfaced to browsers in the
	// global session bundle.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String returns a formatted version string.
func String() string {
	return Version + " (" + Commit + ") built at " + BuildTime
}
