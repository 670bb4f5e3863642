package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/resguardo/resguardo/internal/config"
	infraredis "github.com/resguardo/resguardo/internal/infrastructure/persistence/redis"
)

var revokeTTL time.Duration

// revokeCmd marks a token id as revoked until it would have expired anyway.
var revokeCmd = &cobra.Command{
	Use:   "revoke-token <jti>",
	Short: "Revoke an issued token by its jti claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := cliLogger()
		cfg, err := config.LoadConfig(log)
		if err != nil {
			return err
		}
		client, err := infraredis.NewClient(cmd.Context(), &cfg.Redis, log)
		if err != nil {
			return err
		}
		defer client.Close()

		store := infraredis.NewTokenRevocationStore(client)
		if err := store.Revoke(cmd.Context(), args[0], revokeTTL); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
		fmt.Printf("token %s revoked for %s\n", args[0], revokeTTL)
		return nil
	},
}

func init() {
	revokeCmd.Flags().DurationVar(&revokeTTL, "ttl", 24*time.Hour, "how long the revocation entry is kept")
	rootCmd.AddCommand(revokeCmd)
}
