package cli

import (
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command group for checklist items.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Edit a task checklist",
		Long: `Add, toggle, edit and remove checklist items.

Every change re-derives the task status: no items done is todo, all items
done is done, anything in between is doing.`,
	}

	cmd.AddCommand(newCheckAddCommand(rootOpts))
	cmd.AddCommand(newCheckItemCommand(rootOpts, "toggle", "Toggle an item", 2,
		func(s *session, ids []int64, _ []string) error {
			return s.tasks.ToggleChecklistItem(s.ctx, ids[0], ids[1])
		}))
	cmd.AddCommand(newCheckItemCommand(rootOpts, "edit", "Replace an item's text", 3,
		func(s *session, ids []int64, args []string) error {
			return s.tasks.EditChecklistItemText(s.ctx, ids[0], ids[1], args[2])
		}))
	cmd.AddCommand(newCheckItemCommand(rootOpts, "rm", "Remove an item", 2,
		func(s *session, ids []int64, _ []string) error {
			return s.tasks.RemoveChecklistItem(s.ctx, ids[0], ids[1])
		}))

	return cmd
}

// CheckAddOptions holds flags for the check add command.
type CheckAddOptions struct {
	*RootOptions
	Text string
}

func newCheckAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "add <task-id>",
		Short:         "Append an item",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(cmd, rootOpts, []string{"task"}, args)
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				item, err := s.tasks.AddChecklistItem(s.ctx, ids[0])
				if err != nil {
					return s.out.Fail(ErrCodeDatabase, err)
				}
				if opts.Text != "" {
					if err := s.tasks.EditChecklistItemText(s.ctx, ids[0], item.ID, opts.Text); err != nil {
						return s.out.Fail(ErrCodeDatabase, err)
					}
				}
				return showTask(s, ids[0])
			})
		},
	}

	cmd.Flags().StringVar(&opts.Text, "text", "", "item text")

	return cmd
}

// newCheckItemCommand builds a subcommand taking <task-id> <item-id> plus
// extra positional arguments up to nargs.
func newCheckItemCommand(rootOpts *RootOptions, name, short string, nargs int,
	apply func(s *session, ids []int64, args []string) error) *cobra.Command {
	use := name + " <task-id> <item-id>"
	if nargs > 2 {
		use += " <text>"
	}

	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.ExactArgs(nargs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(cmd, rootOpts, []string{"task", "item"}, args)
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				if err := apply(s, ids, args); err != nil {
					return s.out.Fail(ErrCodeDatabase, err)
				}
				return showTask(s, ids[0])
			})
		},
	}
}
