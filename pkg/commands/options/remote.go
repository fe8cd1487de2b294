package options

import (
	"github.com/spf13/cobra"
)

// RemoteOptions points a command at a running `deck serve` bridge.
type RemoteOptions struct {
	Addr string
}

func AddRemoteArg(cmd *cobra.Command, o *RemoteOptions) {
	cmd.Flags().StringVar(&o.Addr, "remote", "",
		`Run actions through the bridge at this address, example: --remote=127.0.0.1:5173.`)
}
