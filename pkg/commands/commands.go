package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/Snow-evo/flashback-atack/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "flashback",
		Short: base.Wrap80("Self-help tools for working with flashbacks, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTip(topLevel)
	addLog(topLevel)
	addPlan(topLevel)
	addVoice(topLevel)
	addRoad(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
}
