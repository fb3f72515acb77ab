package options

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/voice"
)

// VoiceOptions collects the flags for a voice character submission.
type VoiceOptions struct {
	Name             string
	Gender           string
	Age              string
	AppearancePreset string
	AppearanceDetail string
	Phrases          string
	Reminder         string
}

func AddVoiceArgs(cmd *cobra.Command, o *VoiceOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"Character name, up to 40 characters.")
	cmd.Flags().StringVarP(&o.Gender, "gender", "g", "",
		"Perceived gender: "+strings.Join(voice.Genders, ", ")+".")
	cmd.Flags().StringVar(&o.Age, "age", "",
		"Apparent age, 1 to 130.")
	cmd.Flags().StringVarP(&o.AppearancePreset, "preset", "p", "",
		"Appearance preset: "+strings.Join(voice.Presets, ", ")+".")
	cmd.Flags().StringVar(&o.AppearanceDetail, "appearance", "",
		"Free-text appearance, used with the custom preset.")
	cmd.Flags().StringVar(&o.Phrases, "phrases", "",
		"Things the voice tends to say.")
	cmd.Flags().StringVar(&o.Reminder, "reminder", "",
		"What to remember when this voice shows up.")
}

// Input converts the collected flags into a store submission.
func (o *VoiceOptions) Input() voice.Input {
	return voice.Input{
		Name:             o.Name,
		Gender:           o.Gender,
		Age:              o.Age,
		AppearancePreset: o.AppearancePreset,
		AppearanceDetail: o.AppearanceDetail,
		Phrases:          o.Phrases,
		Reminder:         o.Reminder,
	}
}
