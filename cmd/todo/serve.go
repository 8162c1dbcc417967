// ABOUTME: Serve command running the GraphQL API over HTTP.
// ABOUTME: Shuts down gracefully when the process is interrupted.

package main

import (
	"fmt"

	gql "github.com/harper/todo/internal/graphql"
	"github.com/harper/todo/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GraphQL API server",
	Long: `Serve the todo GraphQL API on /graphql with a /health probe.

The listen address defaults to :3001 and can be set with --addr,
TODO_ADDR, or PORT.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		schema, err := gql.NewSchema(svc)
		if err != nil {
			return fmt.Errorf("build schema: %w", err)
		}

		srv := server.New(schema, server.Options{
			Addr:        cfg.Addr,
			CORSOrigins: cfg.CORSOrigins,
			Logger:      logger,
		})
		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address")
	rootCmd.AddCommand(serveCmd)
}
