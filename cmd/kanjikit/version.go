package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=abc1234 -X main.date=2026-01-01"
var (
	version = ""
	commit  = ""
	date    = ""
)

const (
	develVersion = "(devel)"
	unknownValue = "unknown"
	shortHashLen = 7
)

// versionInfo is what the version command reports about the running binary.
type versionInfo struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool
	Go      string
}

// readVersionInfo merges ldflags values with the module build info.
// Values set through ldflags always win.
func readVersionInfo() versionInfo {
	info := versionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = develVersion
	}
	if len(info.Commit) > shortHashLen {
		info.Commit = info.Commit[:shortHashLen]
	}
	if info.Commit == "" {
		info.Commit = unknownValue
	}
	if info.Date == "" {
		info.Date = unknownValue
	}
	return info
}

// writeTo prints the full version block.
func (v versionInfo) writeTo(w io.Writer) {
	rev := v.Commit
	if v.Dirty {
		rev += " (modified)"
	}
	fmt.Fprintf(w, "kanjikit version %s\n", v.Version)
	fmt.Fprintf(w, "  commit: %s\n", rev)
	fmt.Fprintf(w, "  built:  %s\n", v.Date)
	fmt.Fprintf(w, "  go:     %s\n", v.Go)
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, build date and Go version of kanjikit.
With --short only the version is printed, which is handy in scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}

			info := readVersionInfo()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			info.writeTo(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print only the version number")

	return cmd
}
