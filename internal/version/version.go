// Package version holds build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/notekeep/internal/version.Version=v1.2.0
package version

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build as "notekeep <version> (<commit>, <date>)".
func String() string {
	return fmt.Sprintf("notekeep %s (%s, %s)", Version, Commit, Date)
}

// Fields returns build metadata as log fields for the startup line.
func Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", Version),
		zap.String("commit", Commit),
		zap.String("build_date", Date),
		zap.String("go_version", runtime.Version()),
	}
}
