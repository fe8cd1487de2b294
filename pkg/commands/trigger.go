package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/runner/trigger"
)

func addTrigger(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	ro := &options.RemoteOptions{}

	cmd := &cobra.Command{
		Use:     "trigger <tile-id>",
		Aliases: []string{"run"},
		Short:   "Run the actions of a tile.",
		Example: `
deck trigger 3f9c2a1e
deck trigger 3f9c2a1e --profile work --json
deck trigger 3f9c2a1e --remote 127.0.0.1:5173
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withEnv(cmd.Context(), envOptions{open: true, remote: ro.Addr}, func(ctx context.Context, env *deckEnv) error {
				t := trigger.Trigger{Session: env.Session, ID: args[0], JSON: oo.JSON}
				return t.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddRemoteArg(cmd, ro)

	topLevel.AddCommand(cmd)
}
