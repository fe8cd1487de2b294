package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/runner/schedule"
)

func addSchedule(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}
	agenda := false

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print or edit the day schedule of a profile.",
		Example: `
deck schedule
deck schedule --agenda
deck schedule add "Design review" 10:00 11:00
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				l := schedule.List{Session: env.Session, ShowID: io.ShowID, Agenda: agenda, JSON: oo.JSON}
				return l.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVar(&agenda, "agenda", false, "Draw the day as a timeline.")

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title> <start> <end>",
		Short: "Add an item. Times are HH:MM.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				a := schedule.Add{Session: env.Session, Title: args[0], Start: args[1], End: args[2]}
				return a.Do(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				r := schedule.Remove{Session: env.Session, ID: args[0]}
				return r.Do(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "done <id>",
		Short: "Mark an item completed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				d := schedule.Done{Session: env.Session, ID: args[0]}
				return d.Do(ctx)
			})
		},
	})

	topLevel.AddCommand(cmd)
}

func addConflicts(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	fix := false
	var ignore []string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List overlapping schedule items, optionally moving them apart.",
		Long: `List overlapping schedule items. Only items next to each other once
sorted by start time are compared.

With --fix the later item of each conflict is moved to start five minutes
after the earlier one ends, keeping its length, until none are left.`,
		Example: `
deck conflicts
deck conflicts --fix
deck conflicts --ignore <id>
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				c := schedule.Conflicts{Session: env.Session, Fix: fix, Ignore: ignore, JSON: oo.JSON}
				return c.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&fix, "fix", false, "Move conflicting items apart.")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "Ids of later items whose conflicts are not reported.")

	topLevel.AddCommand(cmd)
}
