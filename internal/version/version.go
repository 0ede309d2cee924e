// Package version provides version information for viewsync.
package version

// Version is the version of viewsync. This can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. This can be overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent is sent with every request to the file service.
func UserAgent() string {
	return "viewsync/" + String()
}
