// ABOUTME: Import command for restoring todos from an export.
// ABOUTME: Titles are validated again and ids are reassigned.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import todos",
	Long:  `Import todos from a JSON or YAML export. Files ending in .yaml or .yml are read as YAML.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
		if err != nil {
			return err
		}

		export, err := decodeExport(data, formatForPath(path))
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		count := 0
		for _, t := range export.Todos {
			todo, err := svc.CreateTodo(cmd.Context(), t.Title)
			if err != nil {
				fmt.Printf("Warning: skipped %q: %v\n", t.Title, err)
				continue
			}
			if t.Completed {
				completed := true
				if _, err := svc.UpdateTodo(cmd.Context(), todo.ID, models.TodoPatch{Completed: &completed}); err != nil {
					fmt.Printf("Warning: failed to mark %q done: %v\n", t.Title, err)
				}
			}
			count++
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d todos", count)))
		return nil
	},
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// decodeExport reads todos oldest first so reimported ids keep their order.
func decodeExport(data []byte, format string) (*ExportData, error) {
	var export ExportData
	var err error
	if format == "yaml" {
		err = yaml.Unmarshal(data, &export)
	} else {
		err = json.Unmarshal(data, &export)
	}
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(export.Todos)-1; i < j; i, j = i+1, j-1 {
		export.Todos[i], export.Todos[j] = export.Todos[j], export.Todos[i]
	}
	return &export, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
