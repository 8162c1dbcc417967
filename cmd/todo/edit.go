// ABOUTME: Edit and done commands for changing existing todos.
// ABOUTME: Only the flags that are given are applied.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo",
	Long: `Change a todo's title or completion state.

Examples:
  todo edit 3 --title "Buy oat milk"
  todo edit 3 --undone`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		patch, err := editPatch(cmd)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			fmt.Println("No changes made.")
			return nil
		}
		return applyPatch(cmd, id, patch, "Updated")
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		completed := true
		return applyPatch(cmd, id, models.TodoPatch{Completed: &completed}, "Completed")
	},
}

func editPatch(cmd *cobra.Command) (models.TodoPatch, error) {
	var patch models.TodoPatch

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		patch.Title = &title
	}

	done, _ := cmd.Flags().GetBool("done")
	undone, _ := cmd.Flags().GetBool("undone")
	switch {
	case done && undone:
		return patch, errors.New("--done and --undone cannot be used together")
	case done:
		completed := true
		patch.Completed = &completed
	case undone:
		completed := false
		patch.Completed = &completed
	}
	return patch, nil
}

func applyPatch(cmd *cobra.Command, id int64, patch models.TodoPatch, verb string) error {
	todo, err := svc.UpdateTodo(cmd.Context(), id, patch)
	if errors.Is(err, service.ErrNotFound) {
		return fmt.Errorf("todo %d not found", id)
	}
	if err != nil {
		return err
	}

	fmt.Println(ui.Success(fmt.Sprintf("%s todo %d", verb, todo.ID)))
	return nil
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().Bool("done", false, "mark as done")
	editCmd.Flags().Bool("undone", false, "mark as not done")
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(doneCmd)
}
