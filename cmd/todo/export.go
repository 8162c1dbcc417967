// ABOUTME: Export command for backing up todos.
// ABOUTME: Writes JSON or YAML to stdout or a file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

type ExportData struct {
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Version    string         `json:"version" yaml:"version"`
	Todos      []*models.Todo `json:"todos" yaml:"todos"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export todos",
	Long:  `Export all todos to JSON or YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		todos, err := svc.ListTodos(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}

		data, err := encodeExport(&ExportData{
			ExportedAt: time.Now().UTC(),
			Version:    exportVersion,
			Todos:      todos,
		}, format)
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			_, err := os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(outputPath, data, 0600); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Exported %d todos to %s", len(todos), outputPath)))
		return nil
	},
}

func encodeExport(export *ExportData, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(export)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|yaml)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	rootCmd.AddCommand(exportCmd)
}
