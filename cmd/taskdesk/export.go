// Export command for the taskdesk CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/internal/jsonl"
)

// Export file names, one JSON object per line.
const (
	tasksExportFile = "tasks.jsonl"
	notesExportFile = "notes.jsonl"
)

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write all tasks and notes as JSONL files",
		Long: `Export lists every task and note from the configured backend and
writes them to tasks.jsonl and notes.jsonl in dir, newest first. The
files use the same format as the mock backend's seed data.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			ctx := cmd.Context()

			backend, err := a.openBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			tasks, err := backend.Tasks()
			if err != nil {
				return err
			}
			notes, err := backend.Notes()
			if err != nil {
				return err
			}

			taskList, err := tasks.List(ctx)
			if err != nil {
				return err
			}
			noteList, err := notes.List(ctx)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}
			if err := jsonl.WriteFile(filepath.Join(dir, tasksExportFile), taskList); err != nil {
				return fmt.Errorf("export tasks: %w", err)
			}
			if err := jsonl.WriteFile(filepath.Join(dir, notesExportFile), noteList); err != nil {
				return fmt.Errorf("export notes: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks and %d notes to %s\n", len(taskList), len(noteList), dir)
			return nil
		},
	}
}
