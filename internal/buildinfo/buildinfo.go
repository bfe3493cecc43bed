// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/garyellow/kampus-chat-go/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/garyellow/kampus-chat-go/internal/buildinfo.Commit=...
var Commit = ""

// Release identifies the build for error reports and logs: the version,
// then the short commit, then "dev".
func Release() string {
	switch {
	case Version != "":
		return Version
	case len(Commit) >= 7:
		return Commit[:7]
	case Commit != "":
		return Commit
	default:
		return "dev"
	}
}
