// ABOUTME: Remove command for deleting todos.
// ABOUTME: Asks for confirmation unless --force is given.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		todo, err := svc.GetTodo(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get todo: %w", err)
		}
		if todo == nil {
			return fmt.Errorf("todo %d not found", id)
		}

		if !force {
			fmt.Printf("Delete todo %q (%d)? [y/N] ", todo.Title, todo.ID)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if _, err := svc.DeleteTodo(cmd.Context(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return fmt.Errorf("todo %d not found", id)
			}
			return fmt.Errorf("failed to delete todo: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted todo %d", id)))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
