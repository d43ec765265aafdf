package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BuiltByShivam/smart-inventory/internal/client/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo records build information for the version command.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// configFlags maps long flag names to the short flags the config package
// reads.
var configFlags = []struct {
	long, short, usage string
}{
	{"config", "c", "path to JSON config file"},
	{"api-url", "a", "product service base URL"},
	{"db", "d", "local state database path"},
	{"token-backend", "t", "reset token backend (kv|redis)"},
	{"redis", "r", "redis address"},
	{"log-format", "l", "log format (text|json|zap)"},
	{"export-dir", "e", "export directory"},
}

// NewRootCmd builds the command tree. Without a subcommand it starts the
// interactive shell.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inventory",
		Short: "Smart Inventory - terminal client for the inventory service",
		Long: `Smart Inventory is an interactive client for a REST product service:
browse and maintain products, watch low stock, export reports and manage
local users.

Configuration is read from defaults, then the JSON file given with -c, then
INVENTORY_* environment variables, then flags.`,
		Version:       versionString(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runShell,
	}
	for _, f := range configFlags {
		root.PersistentFlags().StringP(f.long, f.short, "", f.usage)
	}

	root.AddCommand(newShellCmd(), newExportCmd(), newVersionCmd())
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig hands the config flags set on cmd to the config package so
// that it applies its usual precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var args []string
	for _, f := range configFlags {
		fl := cmd.Flag(f.long)
		if fl == nil || !fl.Changed {
			continue
		}
		args = append(args, "-"+f.short, fl.Value.String())
	}
	return config.Load(args)
}
