package commands

import (
	"errors"

	createwailsapp "github.com/ehsanpo/create-wails-app"
	"github.com/ehsanpo/create-wails-app/internal/logging"
	"github.com/ehsanpo/create-wails-app/internal/output"
	"github.com/spf13/cobra"
)

// ErrReported is returned by commands that already told the user what went
// wrong. main exits non-zero without printing it again.
var ErrReported = errors.New("error already reported")

// RootCmd creates and returns the root command for the create-wails-app CLI
func RootCmd() *cobra.Command {
	var verbose int

	cmd := &cobra.Command{
		Use:   "create-wails-app",
		Short: "Scaffold Wails desktop applications",
		Long: `create-wails-app creates Wails v2 and v3 desktop projects and layers
optional features onto them.

It runs the Wails CLI to generate the starter project, then patches the
generated main.go and frontend in place:
• Frontend extras: TypeScript, Tailwind CSS, router, ESLint + Prettier, CI
• App features: system tray, single instance, auto update, dialogs and more
• Data: SQLite, encrypted storage, Supabase
• Testing: Vitest, Playwright, Go tests

Learn more: https://github.com/ehsanpo/create-wails-app`,
		Version:       createwailsapp.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbose)
			output.SetVerbose(verbose > 0)
		},
	}

	cmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Enable verbose output (-vv for debug logs)")

	return cmd
}
