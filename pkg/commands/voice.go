package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/commands/options"
	"github.com/Snow-evo/flashback-atack/pkg/runner/voicechar"
	"github.com/Snow-evo/flashback-atack/pkg/store"
	"github.com/Snow-evo/flashback-atack/pkg/voice"
)

func addVoice(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "voice",
		Aliases: []string{"character", "char"},
		Short:   "externalize inner-critic voices as characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addVoiceSave(cmd)
	addVoiceList(cmd)
	addVoiceRemove(cmd)
	addVoicePlace(cmd)
	addVoiceUnplace(cmd)

	topLevel.AddCommand(cmd)
}

func addVoiceSave(topLevel *cobra.Command) {
	vo := &options.VoiceOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "create a character, or update one with --id",
		Example: `
flashback voice save -n "The Judge" -g neutral -p shadow
flashback voice save --id <profile id> -n "The Judge" --reminder "it is not my voice"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := voicechar.Save{
				ID:          io.ID,
				Input:       vo.Input(),
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddVoiceArgs(cmd, vo)
	options.AddIDArgs(cmd, io)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addVoiceList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list characters and their room placements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := voicechar.List{
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

func addVoiceRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove", "delete"},
		Short:   "delete a character and its placement",
		Example: `
flashback voice rm <profile id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a profile id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := voicechar.Remove{
				ID:          args[0],
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addVoicePlace(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "place a character at a spot in the imagined room",
		Long:  "Place a character at one of: " + strings.Join(voice.Spots, ", ") + ".",
		Example: `
flashback voice place <profile id> window
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a profile id and a spot")
			}
			return nil
		},
		ValidArgs: voice.Spots,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := voicechar.Place{
				ID:          args[0],
				Spot:        args[1],
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addVoiceUnplace(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "unplace",
		Short: "bring a placed character back",
		Example: `
flashback voice unplace <profile id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a profile id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := voicechar.Unplace{
				ID:          args[0],
				Persistence: p,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
