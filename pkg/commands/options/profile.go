package options

import (
	"github.com/spf13/cobra"
)

// ProfileOptions selects the profile a command works on.
type ProfileOptions struct {
	Name string
}

// AddProfileArg registers --profile on cmd and every subcommand.
func AddProfileArg(cmd *cobra.Command, o *ProfileOptions) {
	cmd.PersistentFlags().StringVarP(&o.Name, "profile", "p", "",
		`Profile to use. Defaults to "default" or the first stored profile.`)
}
