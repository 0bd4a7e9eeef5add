package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "server",
		Short: "Quizhub, a multi-user quiz web application",
		Long: `Quizhub serves question sets that users write, search, comment on and attempt.

Configuration comes from the environment and an optional .env file:
  ADDR, DB_DRIVER, DB_PATH, DATABASE_URL, DB_HOST, DB_PORT, DB_USER,
  DB_PASSWORD, DB_NAME, DB_SSLMODE, SESSION_KEY, COOKIE_SECURE,
  CORS_ALLOWED_ORIGINS

Without a subcommand the server is started.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(newMigrateCmd())
	return root
}
