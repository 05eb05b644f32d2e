package main

import (
	"fmt"
	"os"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := newRootCmd()
	root.Version = version
	root.SetVersionTemplate(versionTemplate())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("prosciutto %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("prosciutto %s\n", version)
}
