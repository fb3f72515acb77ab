package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/commands/options"
	"github.com/Snow-evo/flashback-atack/pkg/runner/watch"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "follow changes made by other windows or processes",
		Example: `
flashback watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := watch.Watch{
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(ctx))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
