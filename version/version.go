// Package version tells which build of jamband is running.
package version

import "runtime/debug"

// Version is set at build time, e.g.
// go build -ldflags "-X github.com/vsariola/jamband/version.Version=$(git describe --dirty)" ./cmd/jamband-play
var Version string

// Hash is the short VCS revision the binary was built from, with a -dirty
// suffix if the work tree had changes. Empty if unknown.
var Hash = revision(debug.ReadBuildInfo())

// VersionOrHash is Version if set, Hash otherwise.
var VersionOrHash = pick(Version, Hash)

func revision(info *debug.BuildInfo, ok bool) string {
	if !ok {
		return ""
	}
	var rev, suffix string
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision":
			rev = s.Value
		case s.Key == "vcs.modified" && s.Value == "true":
			suffix = "-dirty"
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev == "" {
		return ""
	}
	return rev + suffix
}

func pick(version, hash string) string {
	if version != "" {
		return version
	}
	return hash
}
