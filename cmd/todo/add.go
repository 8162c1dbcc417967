// ABOUTME: Add command for creating todos.
// ABOUTME: Arguments are joined with spaces to form the title.

package main

import (
	"fmt"
	"strings"

	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Long: `Add a todo. Titles must be 1-100 characters with no newlines or tabs.

Examples:
  todo add "Buy milk"
  todo add Call the plumber`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")

		todo, err := svc.CreateTodo(cmd.Context(), title)
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Added todo %d", todo.ID)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
