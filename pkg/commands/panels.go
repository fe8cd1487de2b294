package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/runner/panels"
)

func addPanels(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "panels",
		Short: "Print or edit the sidebar layout of a profile.",
		Example: `
deck panels
deck panels toggle VoiceCommand
deck panels mv right 4 0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				l := panels.List{Session: env.Session, JSON: oo.JSON}
				return l.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <panel>",
		Short: "Collapse or expand a panel.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				t := panels.Toggle{Session: env.Session, ID: args[0]}
				return t.Do(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mv <left|right> <from> <to>",
		Short: "Move a panel within a sidebar.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("from: %w", err)
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("to: %w", err)
			}
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				m := panels.Move{Session: env.Session, Side: args[0], From: from, To: to}
				return m.Do(ctx)
			})
		},
	})

	topLevel.AddCommand(cmd)
}
