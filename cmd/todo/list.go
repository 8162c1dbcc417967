// ABOUTME: List command printing todos newest first.
// ABOUTME: Can hide completed todos or emit JSON.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	RunE: func(cmd *cobra.Command, args []string) error {
		openOnly, _ := cmd.Flags().GetBool("open")
		asJSON, _ := cmd.Flags().GetBool("json")

		todos, err := svc.ListTodos(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}

		if openOnly {
			todos = filterOpen(todos)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(todos)
		}

		fmt.Print(ui.FormatTodoList(todos))
		return nil
	},
}

func filterOpen(todos []*models.Todo) []*models.Todo {
	open := make([]*models.Todo, 0, len(todos))
	for _, t := range todos {
		if !t.Completed {
			open = append(open, t)
		}
	}
	return open
}

func init() {
	listCmd.Flags().Bool("open", false, "only show todos that are not done")
	listCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}
