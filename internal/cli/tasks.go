package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/timeline/internal/tasks"
	"github.com/roach88/timeline/internal/timeline"
)

// parseID parses a task or checklist item ID argument.
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q: must be an integer", kind, arg)
	}
	return id, nil
}

// parseIDs parses positional ID arguments, reporting failures as E_ARGS.
func parseIDs(cmd *cobra.Command, opts *RootOptions, kinds []string, args []string) ([]int64, error) {
	ids := make([]int64, len(kinds))
	for i, kind := range kinds {
		id, err := parseID(kind, args[i])
		if err != nil {
			return nil, newFormatter(cmd, opts).Fail(ErrCodeArgs, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// showTask renders the current state of one task.
func showTask(s *session, id int64) error {
	t, ok := s.tasks.Task(id)
	if !ok {
		return s.out.Fail(string(tasks.ErrCodeTaskNotFound), fmt.Errorf("task %d not found", id))
	}
	view := newTaskView(t)
	return s.out.Render(view, func(w io.Writer) error {
		return renderTask(w, view)
	})
}

// NewRowsCommand creates the rows command.
func NewRowsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rows",
		Short: "Show the packed timeline",
		Long: `Pack tasks into rows and draw them on the configured month window.

Tasks are placed first-fit in (start, end) order; a task joins a row only
when it starts at least one day after the row's last task ends.

Examples:
  timeline rows
  timeline rows --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				pos, inside := s.tasks.TodayPosition(s.today)
				view := newChartView(s.tasks.Window(), s.tasks.Layout(), pos, inside)
				return s.out.Render(view, func(w io.Writer) error {
					return renderChart(w, view)
				})
			})
		},
	}
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Status string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by status",
		Long: `List tasks ordered by start date.

With --status the chosen status is listed first, followed by the other two.

Examples:
  timeline list
  timeline list --status doing`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := tasks.ParseFilter(opts.Status)
			if err != nil {
				return newFormatter(cmd, rootOpts).Fail(ErrCodeArgs, err)
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				views := newGroupViews(s.tasks.Grouped(filter))
				return s.out.Render(views, func(w io.Writer) error {
					return renderGroups(w, views)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "all", "focus status (all|todo|doing|done)")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <task-id>",
		Short:         "Show one task with its checklist",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(cmd, rootOpts, []string{"task"}, args)
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				return showTask(s, ids[0])
			})
		},
	}
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Title       string
	Start       string
	End         string
	Assignee    string
	Description string
	Color       string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Long: `Add a task. Flags that are not given take the prefilled draft:
a numbered title, a one week range starting today and the next palette color.

Examples:
  timeline add --title "Design review" --start 2026-03-02 --end 2026-03-06
  timeline add --assignee Mina`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				d := s.tasks.Draft(s.today)
				flags := cmd.Flags()
				if flags.Changed("title") {
					d.Title = opts.Title
				}
				if flags.Changed("start") {
					d.Start = opts.Start
				}
				if flags.Changed("end") {
					d.End = opts.End
				}
				if flags.Changed("color") {
					d.Color = opts.Color
				}
				d.Assignee = opts.Assignee
				d.Description = opts.Description

				added, err := s.tasks.AddTask(s.ctx, d)
				if err != nil {
					return s.out.Fail(ErrCodeDatabase, err)
				}
				s.out.VerboseLog("added task %d", added.ID)
				return showTask(s, added.ID)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "task title")
	cmd.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "assignee")
	cmd.Flags().StringVar(&opts.Description, "description", "", "description")
	cmd.Flags().StringVar(&opts.Color, "color", "", "bar color (#RRGGBB)")

	return cmd
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <task-id> <field> <value>",
		Short: "Set one field of a task",
		Long: `Set one field of a task.

Fields: title, assignee, description, start, end, color.
Status is derived from the checklist and cannot be set; use the check
commands to change the checklist.

Examples:
  timeline set 1769472000000 title "API contract"
  timeline set 1769472000000 end 2026-04-30`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(cmd, rootOpts, []string{"task"}, args)
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				field, err := tasks.ParseField(args[1])
				if err != nil {
					return s.out.Fail(ErrCodeArgs, err)
				}
				if err := s.tasks.UpdateField(s.ctx, ids[0], field, args[2]); err != nil {
					return s.out.Fail(ErrCodeDatabase, err)
				}
				return showTask(s, ids[0])
			})
		},
	}
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <task-id>",
		Short:         "Remove a task",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(cmd, rootOpts, []string{"task"}, args)
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				if err := s.tasks.RemoveTask(s.ctx, ids[0]); err != nil {
					return s.out.Fail(ErrCodeDatabase, err)
				}
				return s.out.Render(map[string]int64{"removed": ids[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Removed task %d (%d left)\n", ids[0], s.tasks.Len())
					return err
				})
			})
		},
	}
}

// NewTodayCommand creates the today command.
func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show where today falls on the timeline",
		Long: `Report the today marker position as a percentage of the window.

The reference date is the configured "today" when set, otherwise the system
clock.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				pos, inside := timeline.TodayPosition(s.today, s.tasks.Window())
				view := TodayView{
					Date:     s.today.Format("2006-01-02"),
					Inside:   inside,
					Position: pos,
				}
				return s.out.Render(view, func(w io.Writer) error {
					if !inside {
						_, err := fmt.Fprintf(w, "%s is outside the window\n", view.Date)
						return err
					}
					_, err := fmt.Fprintf(w, "%s at %.2f%%\n", view.Date, view.Position)
					return err
				})
			})
		},
	}
}
