package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/gospdx/gospdx"
)

// Set at build time with -ldflags "-X main.version=...".
var version = ""

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "spdxparse %s\n", buildVersion())
			fmt.Fprintf(w, "license list %s (built-in)\n", gospdx.DefaultLicenseList().Version)
			fmt.Fprintf(w, "go %s\n", runtime.Version())
		},
	}
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
