package options

import (
	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/triggerlog"
)

// LogOptions collects the flags for a trigger log submission.
type LogOptions struct {
	Triggers     []string
	TriggerOther string
	Details      string
	Emotions     []string
	EmotionOther string
	Actions      []string
	ActionOther  string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringSliceVarP(&o.Triggers, "trigger", "t", nil,
		"Trigger label; repeatable.")
	cmd.Flags().StringVar(&o.TriggerOther, "trigger-other", "",
		"Free-text trigger when no label fits.")
	cmd.Flags().StringVarP(&o.Details, "details", "d", "",
		"What happened, up to 1000 characters.")
	cmd.Flags().StringSliceVarP(&o.Emotions, "emotion", "e", nil,
		"Emotion label; repeatable.")
	cmd.Flags().StringVar(&o.EmotionOther, "emotion-other", "",
		"Free-text emotion.")
	cmd.Flags().StringSliceVarP(&o.Actions, "action", "a", nil,
		"Coping action label; repeatable.")
	cmd.Flags().StringVar(&o.ActionOther, "action-other", "",
		"Free-text coping action.")
}

// Input converts the collected flags into a store submission.
func (o *LogOptions) Input() triggerlog.Input {
	return triggerlog.Input{
		Triggers:     o.Triggers,
		TriggerOther: o.TriggerOther,
		Details:      o.Details,
		Emotions:     o.Emotions,
		EmotionOther: o.EmotionOther,
		Actions:      o.Actions,
		ActionOther:  o.ActionOther,
	}
}
