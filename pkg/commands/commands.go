package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/deck/pkg/commands/options"
)

var (
	po = &options.ProfileOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use: "deck",
		Short: base.Wrap80("A stream deck for the terminal: profiles of tiles that open URLs, " +
			"run commands, notify and play sounds, bound to hotkeys, next to a day schedule " +
			"that spots and fixes conflicts."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddProfileArg(cmd, po)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addProfiles(topLevel)
	addShow(topLevel)
	addNew(topLevel)
	addTile(topLevel)
	addSchedule(topLevel)
	addConflicts(topLevel)
	addPanels(topLevel)
	addTrigger(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addUI(topLevel)
	addServe(topLevel)
	addStats(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
