package builder

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Set with -ldflags "-X github.com/zxhio/pinball/pkg/builder.Version=...".
var (
	Version   = "unknown"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func BuildInfo(prog string) string {
	return fmt.Sprintf("%s %s (%s %s) %s %s/%s", filepath.Base(prog), Version, Commit, Date, GoVersion, runtime.GOOS, runtime.GOARCH)
}
