// Package version reports the wasync build, stamped by the release build:
//
//	go build -ldflags "-X github.com/gwu-libraries/wasync/version.Version=v1.2.0 \
//	  -X github.com/gwu-libraries/wasync/version.CommitHash=$(git rev-parse HEAD) \
//	  -X github.com/gwu-libraries/wasync/version.BuildTime=$(date -u +%FT%TZ)"
package version

import (
	"fmt"
	"runtime"
)

const untagged = "dev"

// Stamped at link time. Local builds keep the defaults.
var (
	CommitHash = untagged
	BuildTime  = "unknown"
	Version    = untagged
)

// Info is what `wasync version` prints
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("wasync %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}

// Short is the abbreviated commit, seven characters like git's default
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// UserAgent identifies requests to ArchivesSpace and Archive-It as
// product/<tag>, falling back to the short commit on untagged builds
func (i Info) UserAgent(product string) string {
	if i.Version != "" && i.Version != untagged {
		return product + "/" + i.Version
	}
	return product + "/" + i.Short()
}
