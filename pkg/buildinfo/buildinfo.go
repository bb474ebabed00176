package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via -ldflags "-X github.com/fulmenhq/iconeat/pkg/buildinfo.BinaryVersion=...".
var (
	BinaryVersion = "dev"
	Commit        = ""
	BuildDate     = ""
)

// Info is the build metadata printed by `iconeat version`.
type Info struct {
	Version   string `json:"version"`
	Module    string `json:"module,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// ModuleVersion returns the module version embedded by the Go toolchain (when available).
func ModuleVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return ""
}

// Current collects the build metadata of the running binary.
func Current() Info {
	return Info{
		Version:   BinaryVersion,
		Module:    ModuleVersion(),
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
