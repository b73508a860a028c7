// Root command for the taskdesk CLI.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/pkg/taskdesk"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	readOnly  bool
	jsonMode  bool
	verbose   bool
}

// app is the state shared by every command of one invocation.
type app struct {
	flags    rootFlags
	settings settings
	logger   *slog.Logger
}

// newRootCmd creates the top-level "taskdesk" command with global flags
// and all subcommands registered.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "taskdesk",
		Short:   "Tasks and meeting notes, backed by SQLite or in-memory mock data",
		Version: taskdesk.Version,
		// Errors are printed once by main.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.flags.verbose)
			slog.SetDefault(a.logger)

			s, err := loadSettings(a.flags, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			a.settings = s
			return nil
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&a.flags.backend, "backend", "", "backend to use: sqlite or mock")
	pf.BoolVar(&a.flags.readOnly, "read-only", false, "open the sqlite store without write access")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newVersionCmd(),
		a.newInitCmd(),
		a.newHealthCmd(),
		a.newServeCmd(),
		a.newExportCmd(),
		a.newTaskCmd(),
		a.newNoteCmd(),
	)
	return root
}
