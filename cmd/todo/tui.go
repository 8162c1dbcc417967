// ABOUTME: TUI command opening the terminal client against the API.
// ABOUTME: Talks to a running 'todo serve' rather than local storage.

package main

import (
	"github.com/harper/todo/internal/client"
	"github.com/harper/todo/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Open the terminal client",
	Long:        `Open an interactive list backed by the GraphQL API at --api-url (default http://localhost:3001/graphql).`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if url, _ := cmd.Flags().GetString("api-url"); url != "" {
			cfg.APIURL = url
		}
		return tui.Run(client.New(cfg.APIURL))
	},
}

func init() {
	tuiCmd.Flags().String("api-url", "", "GraphQL endpoint")
	rootCmd.AddCommand(tuiCmd)
}
