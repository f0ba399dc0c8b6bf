package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Build information, set with -ldflags "-X github.com/agbru/parbench/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// boolFlags are the flags that take no value; every other flag consumes the
// next argument unless written as -name=value.
var boolFlags = map[string]bool{
	"v": true, "verbose": true, "q": true, "quiet": true,
	"quick": true, "no-color": true, "h": true, "help": true,
}

// HasVersionFlag reports whether args request version information. It is
// checked before flag parsing so that -version works with otherwise invalid
// arguments. Scanning follows the flag package: it stops at "--" or the first
// non-flag argument, and flag values are never mistaken for flags.
func HasVersionFlag(args []string) bool {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || len(a) < 2 || a[0] != '-' {
			return false
		}
		name := strings.TrimLeft(a, "-")
		switch name {
		case "version", "V":
			return true
		}
		if !strings.Contains(name, "=") && !boolFlags[name] {
			i++
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "parbench %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	fmt.Fprintf(out, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
