// Task write commands for the taskdesk CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func (a *app) newTaskAddCmd() *cobra.Command {
	var in types.TaskInput
	var category, priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Long: `Add creates a task. The title needs at least three characters and
--category is required.

Example:
  taskdesk task add "Book the venue" --category work --priority high`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			in.Category = types.Category(category)
			in.Priority = types.Priority(priority)

			client, closeFn, err := a.taskClient()
			if err != nil {
				return err
			}
			defer closeFn()

			pending, err := client.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			task, err := pending.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return a.printTask(cmd, "Created", task)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "work or personal (required)")
	cmd.Flags().StringVar(&priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&in.Description, "description", "", "optional details")
	return cmd
}

func (a *app) newTaskUpdateCmd() *cobra.Command {
	var title, description, category, priority string
	var completed bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Long: `Update changes only the fields whose flags are given. Pass an empty
--priority to clear the priority.

Example:
  taskdesk task update 3f2c... --title "Book the bigger venue" --priority medium`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.TaskPatch
			fl := cmd.Flags()
			if fl.Changed("title") {
				patch.Title = &title
			}
			if fl.Changed("description") {
				patch.Description = &description
			}
			if fl.Changed("category") {
				c := types.Category(category)
				patch.Category = &c
			}
			if fl.Changed("priority") {
				p := types.Priority(priority)
				patch.Priority = &p
			}
			if fl.Changed("completed") {
				patch.Completed = &completed
			}
			if patch.Empty() {
				return usageError{errors.New("nothing to update: pass at least one field flag")}
			}

			client, closeFn, err := a.taskClient()
			if err != nil {
				return err
			}
			defer closeFn()

			pending, err := client.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			task, err := pending.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return a.printTask(cmd, "Updated", task)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&title, "title", "", "new title")
	fl.StringVar(&description, "description", "", "new description")
	fl.StringVar(&category, "category", "", "work or personal")
	fl.StringVar(&priority, "priority", "", "low, medium, high or empty")
	fl.BoolVar(&completed, "completed", false, "completion flag")
	return cmd
}

func (a *app) newTaskToggleCmd(use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := a.taskClient()
			if err != nil {
				return err
			}
			defer closeFn()

			pending, err := client.Toggle(cmd.Context(), args[0], completed)
			if err != nil {
				return err
			}
			task, err := pending.Wait(cmd.Context())
			if err != nil {
				return err
			}
			verb := "Reopened"
			if task.Completed {
				verb = "Completed"
			}
			return a.printTask(cmd, verb, task)
		},
	}
}

func (a *app) newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := a.taskClient()
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
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}

func (a *app) printTask(cmd *cobra.Command, verb string, t types.Task) error {
	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), t)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s task %s: %s\n", verb, t.ID, t.Title)
	return nil
}
