// Task read commands for the taskdesk CLI.
package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/internal/view"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func (a *app) newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "List, create and change tasks",
	}
	cmd.AddCommand(
		a.newTaskListCmd(),
		a.newTaskStatsCmd(),
		a.newTaskAddCmd(),
		a.newTaskUpdateCmd(),
		a.newTaskToggleCmd("done", "Mark a task completed", true),
		a.newTaskToggleCmd("reopen", "Mark a task pending again", false),
		a.newTaskDeleteCmd(),
	)
	return cmd
}

// taskFilterFlags are the filter and sort flags of "task list".
type taskFilterFlags struct {
	query    string
	category string
	status   string
	priority string
	order    string
}

func (f *taskFilterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.query, "filter", "", "filter state as a query string, e.g. category=work&order=priority_desc")
	fl.StringVar(&f.category, "category", "", "work, personal or all")
	fl.StringVar(&f.status, "status", "", "pending, completed or all")
	fl.StringVar(&f.priority, "priority", "", "low, medium, high or all")
	fl.StringVar(&f.order, "order", "", "recent, priority_asc or priority_desc")
}

// filter starts from --filter and applies the individual flags that were
// set on top of it. Unknown values fall back to the default of the field.
func (f *taskFilterFlags) filter(cmd *cobra.Command) view.Filter {
	out := view.ParseFilter(f.query)
	fl := cmd.Flags()
	if fl.Changed("category") {
		out = out.WithCategory(types.Category(f.category))
	}
	if fl.Changed("status") {
		out = out.WithStatus(view.Status(f.status))
	}
	if fl.Changed("priority") {
		out = out.WithPriority(types.Priority(f.priority))
	}
	if fl.Changed("order") {
		out = out.WithOrder(view.Order(f.order))
	}
	return out
}

func (a *app) newTaskListCmd() *cobra.Command {
	var ff taskFilterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List reads every task and prints the ones matching the filter, most
recent first unless --order says otherwise. Predicates combine with AND.

Example:
  taskdesk task list --category work --status pending
  taskdesk task list --filter 'priority=high&order=priority_desc'`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := a.taskClient()
			if err != nil {
				return err
			}
			defer closeFn()

			tasks, err := client.List(cmd.Context())
			if err != nil {
				return err
			}

			f := ff.filter(cmd)
			shown := view.Apply(tasks, f)
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), shown)
			}
			if len(shown) == 0 {
				if len(tasks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tasks yet.")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "No tasks match the filter.")
				}
				return nil
			}
			return writeTaskTable(cmd.OutOrStdout(), shown)
		},
	}
	ff.register(cmd)
	return cmd
}

func (a *app) newTaskStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count total, pending and completed tasks",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := a.taskClient()
			if err != nil {
				return err
			}
			defer closeFn()

			tasks, err := client.List(cmd.Context())
			if err != nil {
				return err
			}

			stats := view.Summarize(tasks)
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d\nPending: %d\nCompleted: %d\n",
				stats.Total, stats.Pending, stats.Completed)
			return nil
		},
	}
}

// writeTaskTable prints pending tasks first, then completed ones.
func writeTaskTable(w io.Writer, tasks []types.Task) error {
	pending, completed := view.Partition(tasks)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCATEGORY\tPRIORITY\tTITLE")
	for _, group := range [][]types.Task{pending, completed} {
		for _, t := range group {
			status := "pending"
			if t.Completed {
				status = "done"
			}
			priority := string(t.Priority)
			if priority == "" {
				priority = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, status, t.Category, priority, t.Title)
		}
	}
	return tw.Flush()
}
