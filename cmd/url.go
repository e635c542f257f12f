package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the OAuth2 consent URL",
		Long: `Print the OAuth2 consent URL for the configured client and scopes.

The URL requests offline access so the exchange also returns a refresh token.
Each invocation uses a fresh state value.`,
		Args: cobra.NoArgs,
		RunE: runURL,
	}
}

func runURL(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer a.close()

	authCtx, err := a.workflow.BuildAuthContext(a.config.Credentials)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), a.workflow.ConsentURL(authCtx, a.scopes))
	return nil
}
