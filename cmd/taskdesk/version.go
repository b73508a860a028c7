// Version command for the taskdesk CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/pkg/taskdesk"
)

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taskdesk version",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "taskdesk v%s\nmodule: %s\n", taskdesk.Version, taskdesk.ModulePath)
			return nil
		},
	}
}
