// Shared helpers for taskdesk CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/internal/cache"
	"github.com/mesh-intelligence/taskdesk/internal/store"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// usageError marks a problem with the command line itself.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode maps err onto the CLI exit codes: problems the user can fix by
// changing the input exit 1, everything else exits 2.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ue usageError
	var ve *types.ValidationError
	switch {
	case errors.As(err, &ue), errors.As(err, &ve),
		errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrBackendEmpty), errors.Is(err, types.ErrBackendUnknown),
		errors.Is(err, types.ErrLatencyInvalid):
		return exitUserError
	}
	return exitSysError
}

// errorText renders err for stderr, preferring the user-facing message.
func errorText(err error) string {
	var ve *types.ValidationError
	var be *types.BackendError
	if errors.As(err, &ve) || errors.As(err, &be) {
		return types.UserMessage(err)
	}
	return err.Error()
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openBackend selects and attaches the configured backend. The caller must
// defer Detach.
func (a *app) openBackend() (*store.Backend, error) {
	return store.Open(a.settings.backendConfig())
}

func (a *app) notifier() cache.Notifier {
	return cache.LogNotifier{Logger: a.logger}
}

// taskClient opens the backend and wraps its task store in a cache client.
func (a *app) taskClient() (*cache.TaskClient, func(), error) {
	backend, err := a.openBackend()
	if err != nil {
		return nil, nil, err
	}
	tasks, err := backend.Tasks()
	if err != nil {
		backend.Detach()
		return nil, nil, err
	}
	client := cache.NewTaskClient(tasks, a.settings.cacheOptions(a.notifier()))
	return client, func() { backend.Detach() }, nil
}

// noteClient opens the backend and wraps its note store in a cache client.
func (a *app) noteClient() (*cache.NoteClient, func(), error) {
	backend, err := a.openBackend()
	if err != nil {
		return nil, nil, err
	}
	notes, err := backend.Notes()
	if err != nil {
		backend.Detach()
		return nil, nil, err
	}
	client := cache.NewNoteClient(notes, a.settings.cacheOptions(a.notifier()))
	return client, func() { backend.Detach() }, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
