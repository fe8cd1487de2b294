package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/runner/tiles"
)

func addTile(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tile",
		Aliases: []string{"tiles"},
		Short:   "Edit the tile tree of a profile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTileList(cmd)
	addTileAdd(cmd)
	addTileEdit(cmd)
	addTileRemove(cmd)
	addTileMove(cmd)

	topLevel.AddCommand(cmd)
}

func addTileList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Print the tile tree.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				l := tiles.List{Session: env.Session, ShowID: io.ShowID, JSON: oo.JSON}
				return l.Do(ctx)
			})
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addTileAdd(topLevel *cobra.Command) {
	to := &options.TileOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tile or folder.",
		Example: `
deck tile add Email -a url=mail.google.com --hotkey CmdOrCtrl+Shift+M --color blue
deck tile add Dev --folder
deck tile add Build --parent <folder-id> -a "shell=make build" -a "notification=Build: started"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to.Name = args[0]
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				a := tiles.Add{Session: env.Session, Tile: *to}
				return a.Do(ctx)
			})
		},
	}
	options.AddTileArgs(cmd, to)
	options.AddParentArg(cmd, to)

	topLevel.AddCommand(cmd)
}

func addTileEdit(topLevel *cobra.Command) {
	to := &options.TileOptions{}

	cmd := &cobra.Command{
		Use:   "edit <tile-id>",
		Short: "Change the fields of a tile. Only the flags given are changed.",
		Example: `
deck tile edit 3f9c2a1e --name Inbox --hotkey ""
deck tile edit 3f9c2a1e -a url=outlook.office.com
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				e := tiles.Edit{
					Session: env.Session,
					ID:      args[0],
					Tile:    *to,
					Set:     func(flag string) bool { return cmd.Flags().Changed(flag) },
				}
				return e.Do(ctx)
			})
		},
	}
	options.AddTileArgs(cmd, to)

	topLevel.AddCommand(cmd)
}

func addTileRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <tile-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a tile, or a folder with everything in it.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				r := tiles.Remove{Session: env.Session, ID: args[0]}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addTileMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mv <tile-id> <index>",
		Short: "Move a tile to a position among its siblings, counting from 0.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), envOptions{open: true}, func(ctx context.Context, env *deckEnv) error {
				m := tiles.Move{Session: env.Session, ID: args[0], To: to}
				return m.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
