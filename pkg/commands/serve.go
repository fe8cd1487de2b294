package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	addr := ""

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP bridge for a web or desktop front end.",
		Long: `Serve the HTTP bridge. Front ends list, load and save profiles, run
actions and tiles, and read system load through it. The open profile is
reloaded when its file changes on disk.`,
		Example: `
deck serve
deck serve --listen 127.0.0.1:8080 --profile work
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return withEnv(ctx, envOptions{}, func(ctx context.Context, env *deckEnv) error {
				if err := env.Session.OpenOrDefault(ctx, po.Name); err != nil {
					env.Logger.Warn("serving without an open profile", zap.Error(err))
				}
				listen := addr
				if listen == "" {
					listen = env.Config.Listen()
				}
				s := serve.Serve{
					Session:       env.Session,
					Addr:          listen,
					OS:            env.Host.OS(),
					StatsInterval: serve.DefaultStatsInterval,
					Logger:        env.Logger,
				}
				return s.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "listen", "", "Address to listen on. Defaults to the configured listen address.")

	topLevel.AddCommand(cmd)
}
