// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are set at build time with -ldflags, e.g.
// -X 'kristech/internal/core/version.version=1.0.1' -X 'kristech/internal/core/version.commit=abcd'
func Info() BuildInfo {
	return BuildInfo{
		Service: "kristech-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Version returns only the semantic version string
func Version() string { return version }

var (
	version = "1.0.0"
	commit  = "none"
	date    = "unknown"
)
