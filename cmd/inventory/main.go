package main

import (
	"os"

	"github.com/BuiltByShivam/smart-inventory/cmd/inventory/commands"
	"github.com/BuiltByShivam/smart-inventory/internal/printer"
)

// Version information, set during build with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Execute(); err != nil {
		printer.New(os.Stderr).Error(err)
		os.Exit(1)
	}
}
