// Package cli implements the resguardo-admin command line tool: schema
// migration, first-organization seeding and token revocation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resguardo-admin",
	Short: "Administrative tasks for the resguardo console",
	Long: `resguardo-admin performs the operations that fall outside the API:
migrating the database schema, seeding the first organization and super
administrator, and revoking issued tokens.`,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
