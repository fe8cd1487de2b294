package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/runner/profiles"
)

func addProfiles(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"ls"},
		Short:   "List stored profiles.",
		Example: `
deck profiles
deck profiles --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := withEnv(cmd.Context(), envOptions{}, func(ctx context.Context, env *deckEnv) error {
				_ = env.Session.OpenOrDefault(ctx, po.Name)
				l := profiles.List{Session: env.Session, JSON: oo.JSON}
				return l.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)

	rm := &cobra.Command{
		Use:               "rm <profile>",
		Short:             "Delete a stored profile that is not selected with --profile.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withEnv(cmd.Context(), envOptions{}, func(ctx context.Context, env *deckEnv) error {
				if po.Name != "" {
					if err := env.Session.Open(ctx, po.Name); err != nil {
						return err
					}
				}
				r := profiles.Remove{Session: env.Session, Name: args[0]}
				return r.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	cmd.AddCommand(rm)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show [profile]",
		Short: "Print the tiles, hotkeys and schedule of a profile.",
		Example: `
deck show
deck show work --show-id
deck show work --json
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: profileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				po.Name = args[0]
			}
			err := withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				s := profiles.Show{Session: env.Session, ShowID: io.ShowID, JSON: oo.JSON}
				return s.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addNew(topLevel *cobra.Command) {
	demo := false

	cmd := &cobra.Command{
		Use:   "new <profile>",
		Short: "Create a profile.",
		Example: `
deck new work
deck new playground --demo
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), envOptions{}, func(ctx context.Context, env *deckEnv) error {
				c := profiles.Create{Session: env.Session, Name: args[0], Demo: demo}
				return c.Do(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Fill the profile with sample tiles and a schedule.")

	topLevel.AddCommand(cmd)
}
