package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/commands/options"
	"github.com/Snow-evo/flashback-atack/pkg/runner/tips"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func addTip(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "tip",
		Aliases: []string{"tips", "fav"},
		Short:   "toggle or list favorite tips",
		Example: `
flashback tip tip-7
flashback tip tip-07
flashback tip list
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a tip id, or list")
			}
			io.ID = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}

			if io.ID == "list" {
				s := tips.List{
					Persistence: p,
				}
				return output.HandleError(s.Do(context.Background()))
			}

			s := tips.Toggle{
				ID:          io.ID,
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
