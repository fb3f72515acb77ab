package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/commands/options"
	runnerplan "github.com/Snow-evo/flashback-atack/pkg/runner/plan"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func addPlan(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "plan",
		Aliases: []string{"plans"},
		Short:   "manage externalization plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPlanAdd(cmd)
	addPlanList(cmd)
	addPlanEdit(cmd)
	addPlanRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addPlanAdd(topLevel *cobra.Command) {
	po := &options.PlanOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "save a plan for a supportive character",
		Example: `
flashback plan add -n "Grandma" -s "when the critic gets loud at night"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerplan.Add{
				Input:       po.Input(),
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddPlanArgs(cmd, po)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addPlanList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list saved plans, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerplan.List{
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

func addPlanEdit(topLevel *cobra.Command) {
	po := &options.PlanOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "replace the fields of a saved plan",
		Example: `
flashback plan edit <plan id> -n "Grandma" -s "on the way to work"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a plan id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerplan.Edit{
				ID:          args[0],
				Input:       po.Input(),
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddPlanArgs(cmd, po)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addPlanRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove", "delete"},
		Short:   "delete one plan",
		Example: `
flashback plan rm <plan id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a plan id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerplan.Remove{
				ID:          args[0],
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
