package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gcal-reminder application
var rootCmd = newRootCmd()

// version will be set by main
var version = "dev"

// newRootCmd builds the command tree. Without a subcommand the root runs
// remind, including when only flags are given.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gcal-reminder",
		Short: "Creates a Google Calendar reminder after an OAuth2 consent flow",
		Long: `gcal-reminder authorizes access to your Google Calendar with the OAuth2
authorization code flow and creates a single event with a popup reminder
in your primary calendar. Running it without a subcommand is the same as
running "gcal-reminder remind".

Client credentials are read from flags, the GOOGLE_CLIENT_ID,
GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI environment variables, or a
gcal-reminder.yaml config file.`,
		Args:         cobra.NoArgs,
		RunE:         runRemind,
		SilenceUsage: true,
		Version:      version,
	}
	cmd.SetVersionTemplate(`{{printf "gcal-reminder version %s\n" .Version}}`)

	addGlobalFlags(cmd)
	addReminderFlags(cmd)

	cmd.AddCommand(newRemindCmd())
	cmd.AddCommand(newURLCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
