// Package version contains the dhcpnet build information.
package version

import (
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/AdguardTeam/golibs/stringutil"
)

// version is set by the linker.  If it's empty, the main module version from
// the build information is used.
var version string

// develVersion is the version of binaries built without linker flags outside
// of a module cache.
const develVersion = "(devel)"

// Version returns the dhcpnet build version.
func Version() (v string) {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return develVersion
}

// Build setting keys written by the go command for VCS builds.
const (
	settingRevision = "vcs.revision"
	settingTime     = "vcs.time"
	settingModified = "vcs.modified"
)

// Verbose returns the version along with the toolchain and VCS information of
// the build.  Output example:
//
//	dhcpnet v0.1.0
//	go1.24.5 linux/amd64, race: false
//	revision: 0123abcd (modified)
//	commit time: 2025-07-01T12:00:00Z
func Verbose() (v string) {
	b := &strings.Builder{}

	const nl = "\n"
	stringutil.WriteToBuilder(b, "dhcpnet ", Version(), nl)
	stringutil.WriteToBuilder(
		b,
		runtime.Version(),
		" ",
		runtime.GOOS,
		"/",
		runtime.GOARCH,
		", race: ",
		strconv.FormatBool(isRace),
		nl,
	)

	if info, ok := debug.ReadBuildInfo(); ok {
		writeVCS(b, info.Settings)
	}

	return b.String()
}

// writeVCS writes the VCS lines described by settings to b.  Nothing is written
// if settings have no revision.
func writeVCS(b *strings.Builder, settings []debug.BuildSetting) {
	var rev, commitTime string
	var modified bool
	for _, s := range settings {
		switch s.Key {
		case settingRevision:
			rev = s.Value
		case settingTime:
			commitTime = s.Value
		case settingModified:
			modified = s.Value == "true"
		}
	}

	if rev == "" {
		return
	}

	stringutil.WriteToBuilder(b, "revision: ", rev)
	if modified {
		stringutil.WriteToBuilder(b, " (modified)")
	}

	stringutil.WriteToBuilder(b, "\n")

	if commitTime != "" {
		stringutil.WriteToBuilder(b, "commit time: ", commitTime, "\n")
	}
}
