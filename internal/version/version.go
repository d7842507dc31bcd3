package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/kfkonrad/relconf/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/kfkonrad/relconf/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/kfkonrad/relconf/internal/version.Date={{.Date}}
)

// Short returns the version followed by the abbreviated commit
func Short() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + " (" + commit + ")"
}
