package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/commands/options"
	"github.com/Snow-evo/flashback-atack/pkg/roadmap"
	"github.com/Snow-evo/flashback-atack/pkg/runner/road"
	"github.com/Snow-evo/flashback-atack/pkg/store"
)

func addRoad(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "road",
		Aliases: []string{"roadmap"},
		Short:   "track where you stand on the recovery roadmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := road.Show{
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	addRoadMark(cmd)
	addRoadNote(cmd)

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func stageIDs() []string {
	stages := roadmap.Stages()
	ids := make([]string, 0, len(stages))
	for _, s := range stages {
		ids = append(ids, s.ID)
	}
	return ids
}

func addRoadMark(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mark",
		Short: "mark the current stage; marking it again clears the marker",
		Long:  "Mark one of: " + strings.Join(stageIDs(), ", ") + ".",
		Example: `
flashback road mark stabilization
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a stage")
			}
			return nil
		},
		ValidArgs: stageIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := road.Mark{
				Stage:       args[0],
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addRoadNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "write the note for a stage; empty text clears it",
		Example: `
flashback road note safety "found a place that feels safe"
flashback road note safety ""
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a stage")
			}
			return nil
		},
		ValidArgs: stageIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := road.Note{
				Stage:       args[0],
				Text:        strings.Join(args[1:], " "),
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
