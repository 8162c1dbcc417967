// ABOUTME: Show command for displaying a single todo.
// ABOUTME: Renders the detail view with glamour.

package main

import (
	"fmt"

	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		todo, err := svc.GetTodo(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get todo: %w", err)
		}
		if todo == nil {
			return fmt.Errorf("todo %d not found", id)
		}

		fmt.Print(ui.FormatTodoDetail(todo))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
