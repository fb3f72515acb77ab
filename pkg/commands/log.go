package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/commands/options"
	runnerlog "github.com/Snow-evo/flashback-atack/pkg/runner/log"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func addLog(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"logs"},
		Short:   "record and review trigger log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addLogAdd(cmd)
	addLogList(cmd)
	addLogEdit(cmd)
	addLogRemove(cmd)
	addLogClear(cmd)

	topLevel.AddCommand(cmd)
}

func addLogAdd(topLevel *cobra.Command) {
	lo := &options.LogOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "record what set a flashback off",
		Example: `
flashback log add -t "loud noise" -e fear -a "breathing" -d "it passed after a minute"
flashback log add --trigger-other "crowded train"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerlog.Add{
				Input:       lo.Input(),
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddLogArgs(cmd, lo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addLogList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list trigger log entries, newest first",
		Example: `
flashback log list --show-id
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerlog.List{
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addLogEdit(topLevel *cobra.Command) {
	lo := &options.LogOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "replace the fields of an entry",
		Example: `
flashback log edit <entry id> -t "loud noise" -d "shorter this time"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an entry id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerlog.Edit{
				ID:          args[0],
				Input:       lo.Input(),
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddLogArgs(cmd, lo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addLogRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove", "delete"},
		Short:   "delete one entry",
		Example: `
flashback log rm <entry id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an entry id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerlog.Remove{
				ID:          args[0],
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addLogClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "delete every entry",
		Example: `
flashback log clear --yes
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerlog.Clear{
				Confirmed:   co.Yes,
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
