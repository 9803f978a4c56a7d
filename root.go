package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coldstore",
	Short: "Cold storage master-data lookup service",
	Long: `coldstore serves the session-gated lookup API over the warehouse master data
(accounts, customers, materials, rooms and the rest).

Configuration comes from the environment, optionally loaded from a .env file.

Examples:
  # Apply migrations, then start the API
  coldstore serve --migrate

  # Show migration state
  coldstore migrate status

  # Hash a password for seeding the users table
  coldstore hash-password 's3cret'`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newHashPasswordCmd())
}
