package options

import (
	"github.com/spf13/cobra"

	"github.com/Snow-evo/flashback-atack/pkg/plans"
)

// PlanOptions collects the flags for an externalization plan submission.
type PlanOptions struct {
	Name     string
	Persona  string
	Support  string
	Scene    string
	Location string
	Action   string
}

func AddPlanArgs(cmd *cobra.Command, o *PlanOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"Name of the supportive character.")
	cmd.Flags().StringVar(&o.Persona, "persona", "",
		"How the character speaks and carries itself.")
	cmd.Flags().StringVar(&o.Support, "support", "",
		"How the character supports you.")
	cmd.Flags().StringVarP(&o.Scene, "scene", "s", "",
		"The scene where the character should appear.")
	cmd.Flags().StringVar(&o.Location, "location", "",
		"Where in the scene the character stands.")
	cmd.Flags().StringVar(&o.Action, "action", "",
		"What the character does there.")
}

// Input converts the collected flags into a store submission.
func (o *PlanOptions) Input() plans.Input {
	return plans.Input{
		CharacterName:    o.Name,
		CharacterPersona: o.Persona,
		CharacterSupport: o.Support,
		SupportScene:     o.Scene,
		SupportLocation:  o.Location,
		SupportAction:    o.Action,
	}
}
