package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Snow-evo/flashback-atack/pkg/plans"
	"github.com/Snow-evo/flashback-atack/pkg/roadmap"
	"github.com/Snow-evo/flashback-atack/pkg/triggerlog"
	"github.com/Snow-evo/flashback-atack/pkg/voice"
)

// PrettyPrint renders store state for the terminal.
type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

// Feedback prints a short inline status message.
func (pp *PrettyPrint) Feedback(message string) {
	f := color.New(color.FgGreen)
	_, _ = f.Println(message)
}

// Error prints a short inline failure message.
func (pp *PrettyPrint) Error(message string) {
	e := color.New(color.FgRed)
	_, _ = e.Println(message)
}

// StorageWarning tells the user this session has no durability.
func (pp *PrettyPrint) StorageWarning() {
	w := color.New(color.FgYellow, color.Italic)
	_, _ = w.Println("storage is unavailable; changes will not survive this session")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Print(" none\n\n")
}

// Favorites renders every tip id with its favorite state.
func (pp *PrettyPrint) Favorites(ids []string) {
	pp.TitleWithCount("Favorites", len(ids))
	if len(ids) == 0 {
		pp.none()
		return
	}

	heart := color.New(color.FgHiRed)
	t := color.New()
	for _, id := range ids {
		_, _ = heart.Print("♥ ")
		_, _ = t.Println(id)
	}
	_, _ = t.Println("")
}

// TriggerLogs renders log entries newest-first.
func (pp *PrettyPrint) TriggerLogs(entries []triggerlog.Entry) {
	pp.TitleWithCount("Trigger log", len(entries))
	if len(entries) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)
	t := color.New()

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Println(e.ID)
		}
		_, _ = f.Println(e.CreatedAt.Display())

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("triggers:", chipLine(e.Triggers, e.TriggerOther))
		if e.Details != "" {
			tbl.AddRow("details:", e.Details)
		}
		if len(e.Emotions) > 0 || e.EmotionOther != "" {
			tbl.AddRow("emotions:", chipLine(e.Emotions, e.EmotionOther))
		}
		if len(e.Actions) > 0 || e.ActionOther != "" {
			tbl.AddRow("actions:", chipLine(e.Actions, e.ActionOther))
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
		_, _ = t.Println("")
	}
}

func chipLine(labels []string, other string) string {
	parts := append([]string(nil), labels...)
	if other != "" {
		parts = append(parts, "✍ "+other)
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, ", ")
}

// Plans renders externalization plans newest-first.
func (pp *PrettyPrint) Plans(list []plans.Plan) {
	pp.TitleWithCount("Externalization plans", len(list))
	if len(list) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	name := color.New(color.Bold)
	t := color.New()

	for _, p := range list {
		if pp.ShowID {
			_, _ = y.Println(p.ID)
		}
		_, _ = name.Println(p.CharacterName)

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("scene:", p.SupportScene)
		if p.CharacterPersona != "" {
			tbl.AddRow("persona:", p.CharacterPersona)
		}
		if p.CharacterSupport != "" {
			tbl.AddRow("says:", p.CharacterSupport)
		}
		if p.SupportLocation != "" {
			tbl.AddRow("kept at:", p.SupportLocation)
		}
		if p.SupportAction != "" {
			tbl.AddRow("response:", p.SupportAction)
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
		_, _ = t.Println("")
	}
}

// Profiles renders voice character profiles with their room placements.
func (pp *PrettyPrint) Profiles(list []voice.Profile, placements map[string]string) {
	pp.TitleWithCount("Voice characters", len(list))
	if len(list) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	name := color.New(color.Bold)
	t := color.New()

	for _, p := range list {
		if pp.ShowID {
			_, _ = y.Println(p.ID)
		}
		display := p.Name
		if display == "" {
			display = "(unnamed)"
		}
		_, _ = name.Println(display)

		tbl := uitable.New()
		tbl.Separator = "  "
		if meta := profileMeta(p); meta != "" {
			tbl.AddRow("profile:", meta)
		}
		if look := appearance(p); look != "" {
			tbl.AddRow("appearance:", look)
		}
		if p.Phrases != "" {
			tbl.AddRow("phrases:", p.Phrases)
		}
		if p.Reminder != "" {
			tbl.AddRow("reminder:", p.Reminder)
		}
		if spot, ok := placements[p.ID]; ok {
			tbl.AddRow("placed at:", spot)
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
		_, _ = t.Println("")
	}
}

func profileMeta(p voice.Profile) string {
	parts := make([]string, 0, 2)
	if p.Gender != "" {
		parts = append(parts, p.Gender)
	}
	if p.Age != "" {
		parts = append(parts, p.Age+" years old")
	}
	return strings.Join(parts, " / ")
}

func appearance(p voice.Profile) string {
	if p.AppearancePreset == "custom" {
		return p.AppearanceDetail
	}
	return p.AppearancePreset
}

// Roadmap renders every stage, the current marker, and any notes.
func (pp *PrettyPrint) Roadmap(stages []roadmap.Stage, current string, notes map[string]string) {
	pp.Title("Roadmap")

	mark := color.New(color.FgHiGreen, color.Bold)
	t := color.New()
	f := color.New(color.Faint)

	for _, stage := range stages {
		if stage.ID == current {
			_, _ = mark.Printf("▶ %s", stage.Title)
			_, _ = f.Println("  (you are here)")
		} else {
			_, _ = t.Printf("  %s\n", stage.Title)
		}
		if note, ok := notes[stage.ID]; ok {
			_, _ = f.Printf("    note: %s\n", note)
		}
	}
	_, _ = t.Println("")
}
