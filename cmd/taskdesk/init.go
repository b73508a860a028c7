// Init command for the taskdesk CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/internal/paths"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize taskdesk configuration and storage",
		Long: `Init creates the configuration directory and writes config.yaml if it
is missing, then attaches the configured backend and creates the tasks
and notes tables. Running init again is safe.`,
		Args: exactArgs(0),
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	s := a.settings
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(s.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	configPath := paths.ConfigFile(s.ConfigDir)
	written, err := writeConfigIfMissing(configPath, s)
	if err != nil {
		return err
	}
	if written {
		fmt.Fprintf(out, "Wrote %s\n", configPath)
	}

	backend, err := a.openBackend()
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer backend.Detach()

	created, err := backend.SetupSchema(cmd.Context())
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Schema ready in %s\n", s.DataDir)
	}
	fmt.Fprintf(out, "taskdesk initialized (backend: %s)\n", backend.Name())
	return nil
}
