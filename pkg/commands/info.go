package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and the stored profiles.",
		Example: `
deck info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := withEnv(cmd.Context(), envOptions{}, func(ctx context.Context, env *deckEnv) error {
				_ = env.Session.OpenOrDefault(ctx, po.Name)
				s := info.Info{
					Config:  env.Config,
					Session: env.Session,
					JSON:    oo.JSON,
				}
				return s.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print CPU and memory utilisation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := info.Stats{JSON: oo.JSON}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
