package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resguardo/resguardo/internal/infrastructure/persistence/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := cliLogger()
		db, err := openDatabase(cmd.Context(), log)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
		fmt.Println("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
