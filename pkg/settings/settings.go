// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the menubutton CLI and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "menubutton"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings for a single execution of the CLI. Flag values are
// copied here after parsing so that packages below cmd never read globals.
type Run struct {
	MinLogLevel int8
	BoardFile   string
	KeyMode     string
	TypeAhead   bool
	NoColor     bool
	NoTUI       bool
	// Output is the listing format used when the board is not interactive.
	Output string
}

// NewCliParams returns the defaults used when no flags are given.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		KeyMode:     "vim",
		TypeAhead:   false,
		NoColor:     false,
		NoTUI:       false,
		Output:      "table",
	}
}
