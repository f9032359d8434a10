package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Version information - injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = ""
)

// printVersion writes the version banner followed by toolchain details.
func printVersion(w io.Writer) {
	line := "arbor version " + Version
	if Build != "unknown" && Build != "" {
		line += fmt.Sprintf(" (build: %s)", Build)
	}
	if BuildTime != "" {
		line += fmt.Sprintf(" [%s]", BuildTime)
	}
	_, _ = fmt.Fprintln(w, line)
	_, _ = fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	_, _ = fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if Version == "dev" {
		if rev := vcsRevision(); rev != "" {
			_, _ = fmt.Fprintf(w, "Commit: %s\n", rev)
		}
	}
}

// vcsRevision returns the short commit hash embedded by the go tool, if any.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) > 7 {
			return setting.Value[:7]
		}
	}
	return ""
}
