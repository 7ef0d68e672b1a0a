package main

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/urfave/cli/v3"
)

// Build information, filled from debug.ReadBuildInfo() at init.
var (
	Version   = "unknown"
	GoVersion = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
	Modified  bool
)

func init() {
	parseBuildInfo()
}

func parseBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	Version = info.Main.Version
	GoVersion = info.GoVersion

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			Commit = setting.Value
		case "vcs.time":
			BuildTime = setting.Value
		case "vcs.modified":
			Modified = setting.Value == "true"
		}
	}
}

func versionString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "version: %s\n", Version)
	fmt.Fprintf(&sb, "go: %s\n", GoVersion)
	if Commit != "unknown" {
		if Modified {
			fmt.Fprintf(&sb, "commit: %s (dirty)\n", Commit)
		} else {
			fmt.Fprintf(&sb, "commit: %s\n", Commit)
		}
	}
	if BuildTime != "unknown" {
		fmt.Fprintf(&sb, "built: %s\n", BuildTime)
	}
	return sb.String()
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Print version information",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "short",
			Usage: "Print only the version",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		if command.Bool("short") {
			fmt.Println(Version)
			return nil
		}
		fmt.Print(versionString())
		return nil
	},
}
