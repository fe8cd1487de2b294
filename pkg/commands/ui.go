package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	mini := false
	ro := &options.RemoteOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal deck.",
		Long: `Open the terminal deck: a grid of the profile's tiles with folder
navigation, tile hotkeys, the running schedule item and the next one.
Logs go to deck.log in the profile directory while the deck is open.`,
		Example: `
deck ui
deck ui --profile work --mini
deck ui --remote 127.0.0.1:5173
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := ui.NewKeymap()
			if err != nil {
				return err
			}
			o := envOptions{open: true, logFile: true, registrar: keys, remote: ro.Addr}
			return withEnv(cmd.Context(), o, func(ctx context.Context, env *deckEnv) error {
				i := ui.UI{
					Session: env.Session,
					Keymap:  keys,
					Stats:   host.SystemLoad,
					Mini:    mini,
				}
				return i.Do(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&mini, "mini", false, "Start in mini mode, showing the first four tiles.")
	options.AddRemoteArg(cmd, ro)

	topLevel.AddCommand(cmd)
}
