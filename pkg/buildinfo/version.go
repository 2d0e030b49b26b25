// Package buildinfo carries the version of the touring binary.
//
// The variables are stamped at link time:
//
//	go build -ldflags "-X github.com/matzehuels/touring/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/touring/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/touring/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/touring
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the abbreviated git commit.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the multi-line build description printed by "touring version".
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns "touring <version>" for headers such as the play canvas.
func Short() string {
	if Commit == "none" {
		return "touring " + Version
	}
	return fmt.Sprintf("touring %s (%s)", Version, Commit)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
