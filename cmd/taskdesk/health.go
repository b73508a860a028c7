// Health command for the taskdesk CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func (a *app) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the configured backend",
		Long: `Health attaches the configured backend and reports whether its tables
are reachable. The mock backend always reports "disabled".

The command exits 2 when the status is missing_table, permission_denied
or error.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.openBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			h := backend.Health(cmd.Context())
			if a.flags.jsonMode {
				if err := printJSON(cmd.OutOrStdout(), h); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Status, h.Message)
			}

			switch h.Status {
			case types.HealthOK, types.HealthDisabled:
				return nil
			}
			return fmt.Errorf("backend unhealthy: %s", h.Status)
		},
	}
}
