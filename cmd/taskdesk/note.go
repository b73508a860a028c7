// Note commands for the taskdesk CLI.
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func (a *app) newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "List, create and change meeting notes",
	}
	cmd.AddCommand(
		a.newNoteListCmd(),
		a.newNoteAddCmd(),
		a.newNoteUpdateCmd(),
		a.newNoteDeleteCmd(),
	)
	return cmd
}

func (a *app) newNoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List meeting notes, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := a.noteClient()
			if err != nil {
				return err
			}
			defer closeFn()

			notes, err := client.List(cmd.Context())
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), notes)
			}
			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meeting notes yet.")
				return nil
			}
			for _, n := range notes {
				writeNote(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

// writeNote prints a note header followed by its topics as a list.
func writeNote(w io.Writer, n types.Note) {
	fmt.Fprintf(w, "%s  %s  %s\n", n.Date, n.Title, n.ID)
	topics := types.ParseTopics(n.Topics)
	if len(topics) == 0 {
		fmt.Fprintln(w, "    (no topics)")
		return
	}
	for _, t := range topics {
		fmt.Fprintf(w, "    - %s\n", t)
	}
}

// noteFields are the flags shared by "note add" and "note update".
type noteFields struct {
	title  string
	date   string
	topics string
	topic  []string
}

func (f *noteFields) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "note title (default \"Meeting\")")
	fl.StringVar(&f.date, "date", "", "meeting date, YYYY-MM-DD (default today)")
	fl.StringVar(&f.topics, "topics", "", "topics as free text, one per line or as a bulleted list")
	fl.StringArrayVar(&f.topic, "topic", nil, "a single topic; repeat for several")
	cmd.MarkFlagsMutuallyExclusive("topics", "topic")
}

// topicsText returns the topics text from --topics or the --topic list.
func (f *noteFields) topicsText(cmd *cobra.Command) (string, bool) {
	if cmd.Flags().Changed("topic") {
		return types.FormatTopics(f.topic), true
	}
	return f.topics, cmd.Flags().Changed("topics")
}

func (a *app) newNoteAddCmd() *cobra.Command {
	var f noteFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a meeting note",
		Long: `Add creates a meeting note. Every field is optional: the title defaults
to "Meeting" and the date to today.

Example:
  taskdesk note add --title "Weekly sync" --topic "Budget" --topic "Hiring"`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, _ := f.topicsText(cmd)
			in := types.NoteInput{Title: f.title, Date: f.date, Topics: topics}

			client, closeFn, err := a.noteClient()
			if err != nil {
				return err
			}
			defer closeFn()

			pending, err := client.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			note, err := pending.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return a.printNote(cmd, "Created", note)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newNoteUpdateCmd() *cobra.Command {
	var f noteFields

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a meeting note",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.NotePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &f.title
			}
			if cmd.Flags().Changed("date") {
				patch.Date = &f.date
			}
			if topics, ok := f.topicsText(cmd); ok {
				patch.Topics = &topics
			}
			if patch.Title == nil && patch.Date == nil && patch.Topics == nil {
				return usageError{errors.New("nothing to update: pass at least one field flag")}
			}

			client, closeFn, err := a.noteClient()
			if err != nil {
				return err
			}
			defer closeFn()

			pending, err := client.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			note, err := pending.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return a.printNote(cmd, "Updated", note)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newNoteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a meeting note",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := a.noteClient()
			if err != nil {
				return err
			}
			defer closeFn()

			pending, err := client.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := pending.Wait(cmd.Context()); err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"id": args[0], "status": "deleted"})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", args[0])
			return nil
		},
	}
}

func (a *app) printNote(cmd *cobra.Command, verb string, n types.Note) error {
	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), n)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s note %s\n", verb, n.ID)
	writeNote(cmd.OutOrStdout(), n)
	return nil
}
