package main

import (
	"fmt"

	intconfig "coldstore/internal/config"
	"coldstore/internal/db"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}

			env := intconfig.LoadEnv()
			log, err := newLogger(env)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			conn := newConn(env, log)
			defer conn.Close()

			switch action {
			case "up":
				return db.Migrate(cmd.Context(), conn)
			case "status":
				return db.MigrationStatus(cmd.Context(), conn)
			default:
				return fmt.Errorf("unknown migrate action %q", action)
			}
		},
	}
}
