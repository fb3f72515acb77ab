// Package mcp provides the Model Context Protocol server integration for the
// flashback self-help tools.
package mcp

import (
	"context"
	"errors"

	"github.com/Snow-evo/flashback-atack/pkg/favorites"
	"github.com/Snow-evo/flashback-atack/pkg/plans"
	"github.com/Snow-evo/flashback-atack/pkg/roadmap"
	"github.com/Snow-evo/flashback-atack/pkg/store"
	"github.com/Snow-evo/flashback-atack/pkg/triggerlog"
	"github.com/Snow-evo/flashback-atack/pkg/voice"
)

// Service coordinates persistence-backed operations that are shared by the
// MCP server. Stores are built lazily per call so external writes between
// calls are always visible.
type Service struct {
	Persistence store.Persistence
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{Persistence: p}
}

// LogDTO is a transport-friendly projection of a trigger log entry.
type LogDTO struct {
	ID           string   `json:"id"`
	CreatedAt    string   `json:"createdAt"`
	Triggers     []string `json:"triggers"`
	TriggerOther string   `json:"triggerOther,omitempty"`
	Details      string   `json:"details,omitempty"`
	Emotions     []string `json:"emotions"`
	EmotionOther string   `json:"emotionOther,omitempty"`
	Actions      []string `json:"actions"`
	ActionOther  string   `json:"actionOther,omitempty"`
}

// PlanDTO is a transport-friendly projection of an externalization plan.
type PlanDTO struct {
	ID               string `json:"id"`
	CreatedAt        string `json:"createdAt"`
	CharacterName    string `json:"characterName"`
	CharacterPersona string `json:"characterPersona,omitempty"`
	CharacterSupport string `json:"characterSupport,omitempty"`
	SupportScene     string `json:"supportScene"`
	SupportLocation  string `json:"supportLocation,omitempty"`
	SupportAction    string `json:"supportAction,omitempty"`
}

// CharacterDTO is a transport-friendly projection of a voice character
// profile, joined with its room placement.
type CharacterDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Gender           string `json:"gender,omitempty"`
	Age              string `json:"age,omitempty"`
	AppearancePreset string `json:"appearancePreset,omitempty"`
	AppearanceDetail string `json:"appearanceDetail,omitempty"`
	Phrases          string `json:"phrases,omitempty"`
	Reminder         string `json:"reminder,omitempty"`
	PlacedAt         string `json:"placedAt,omitempty"`
}

// StageDTO describes one roadmap stage with its marker and note.
type StageDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Current bool   `json:"current"`
	Note    string `json:"note,omitempty"`
}

func (s *Service) check() error {
	if s.Persistence == nil {
		return errors.New("persistence is not configured")
	}
	return nil
}

// Favorites returns the normalized favorite tip ids.
func (s *Service) Favorites(ctx context.Context) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return favorites.New(s.Persistence).List(), nil
}

// ToggleFavorite flips a tip's favorite state and reports the new state.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	return favorites.New(s.Persistence).Toggle(id)
}

// ListLogs returns the trigger log newest-first.
func (s *Service) ListLogs(ctx context.Context) ([]LogDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return toLogDTOs(triggerlog.New(s.Persistence).List()), nil
}

// LogByID fetches one trigger log entry.
func (s *Service) LogByID(ctx context.Context, id string) (*LogDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	e, err := triggerlog.New(s.Persistence).Get(id)
	if err != nil {
		return nil, err
	}
	dto := toLogDTO(e)
	return &dto, nil
}

// AddLog records a new trigger log entry.
func (s *Service) AddLog(ctx context.Context, in triggerlog.Input) (*LogDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	e, err := triggerlog.New(s.Persistence).Create(in)
	if err != nil {
		return nil, err
	}
	dto := toLogDTO(e)
	return &dto, nil
}

// UpdateLog replaces the fields of an existing entry.
func (s *Service) UpdateLog(ctx context.Context, id string, in triggerlog.Input) (*LogDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	e, err := triggerlog.New(s.Persistence).Update(id, in)
	if err != nil {
		return nil, err
	}
	dto := toLogDTO(e)
	return &dto, nil
}

// DeleteLog removes one entry and reports whether it existed.
func (s *Service) DeleteLog(ctx context.Context, id string) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	return triggerlog.New(s.Persistence).Delete(id)
}

// ListPlans returns the saved plans newest-first.
func (s *Service) ListPlans(ctx context.Context) ([]PlanDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return toPlanDTOs(plans.New(s.Persistence).List()), nil
}

// AddPlan saves a new externalization plan.
func (s *Service) AddPlan(ctx context.Context, in plans.Input) (*PlanDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	p, err := plans.New(s.Persistence).Create(in)
	if err != nil {
		return nil, err
	}
	dto := toPlanDTO(p)
	return &dto, nil
}

// UpdatePlan replaces the fields of a saved plan.
func (s *Service) UpdatePlan(ctx context.Context, id string, in plans.Input) (*PlanDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	p, err := plans.New(s.Persistence).Update(id, in)
	if err != nil {
		return nil, err
	}
	dto := toPlanDTO(p)
	return &dto, nil
}

// DeletePlan removes one plan and reports whether it existed.
func (s *Service) DeletePlan(ctx context.Context, id string) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	return plans.New(s.Persistence).Delete(id)
}

// ListCharacters returns the saved profiles joined with placements.
func (s *Service) ListCharacters(ctx context.Context) ([]CharacterDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	vs := voice.New(s.Persistence)
	return toCharacterDTOs(vs.List(), vs.Placements()), nil
}

// SaveCharacter creates a profile, or updates one when id is non-empty.
func (s *Service) SaveCharacter(ctx context.Context, id string, in voice.Input) (*CharacterDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	vs := voice.New(s.Persistence)
	var p voice.Profile
	var err error
	if id == "" {
		p, err = vs.Create(in)
	} else {
		p, err = vs.Update(id, in)
	}
	if err != nil {
		return nil, err
	}
	spot, _ := vs.PlacementOf(p.ID)
	dto := toCharacterDTO(p, spot)
	return &dto, nil
}

// DeleteCharacter removes a profile and its placement.
func (s *Service) DeleteCharacter(ctx context.Context, id string) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	return voice.New(s.Persistence).Delete(id)
}

// PlaceCharacter pins a profile to one of the room spots; an empty spot
// clears the placement.
func (s *Service) PlaceCharacter(ctx context.Context, id, spot string) (*CharacterDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	vs := voice.New(s.Persistence)
	if spot == "" {
		if err := vs.Unplace(id); err != nil {
			return nil, err
		}
	} else if err := vs.Place(id, spot); err != nil {
		return nil, err
	}
	p, err := vs.Get(id)
	if err != nil {
		return nil, err
	}
	placed, _ := vs.PlacementOf(id)
	dto := toCharacterDTO(p, placed)
	return &dto, nil
}

// Roadmap returns every stage with the current marker and notes applied.
func (s *Service) Roadmap(ctx context.Context) ([]StageDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rs := roadmap.New(s.Persistence)
	defer rs.Close()

	current := rs.Current()
	notes := rs.Notes()

	stages := roadmap.Stages()
	out := make([]StageDTO, 0, len(stages))
	for _, st := range stages {
		out = append(out, StageDTO{
			ID:      st.ID,
			Title:   st.Title,
			Current: st.ID == current,
			Note:    notes[st.ID],
		})
	}
	return out, nil
}

// MarkStage toggles the current stage marker and returns the new state.
func (s *Service) MarkStage(ctx context.Context, id string) ([]StageDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rs := roadmap.New(s.Persistence)
	defer rs.Close()
	if _, err := rs.Mark(id); err != nil {
		return nil, err
	}
	return s.Roadmap(ctx)
}

// SetStageNote writes a stage note immediately; empty text clears it.
func (s *Service) SetStageNote(ctx context.Context, stage, text string) error {
	if err := s.check(); err != nil {
		return err
	}
	rs := roadmap.New(s.Persistence)
	defer rs.Close()
	return rs.FlushNote(stage, text)
}

func toLogDTO(e triggerlog.Entry) LogDTO {
	return LogDTO{
		ID:           e.ID,
		CreatedAt:    e.CreatedAt.Display(),
		Triggers:     e.Triggers,
		TriggerOther: e.TriggerOther,
		Details:      e.Details,
		Emotions:     e.Emotions,
		EmotionOther: e.EmotionOther,
		Actions:      e.Actions,
		ActionOther:  e.ActionOther,
	}
}

func toLogDTOs(entries []triggerlog.Entry) []LogDTO {
	out := make([]LogDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLogDTO(e))
	}
	return out
}

func toPlanDTO(p plans.Plan) PlanDTO {
	return PlanDTO{
		ID:               p.ID,
		CreatedAt:        p.CreatedAt.Display(),
		CharacterName:    p.CharacterName,
		CharacterPersona: p.CharacterPersona,
		CharacterSupport: p.CharacterSupport,
		SupportScene:     p.SupportScene,
		SupportLocation:  p.SupportLocation,
		SupportAction:    p.SupportAction,
	}
}

func toPlanDTOs(list []plans.Plan) []PlanDTO {
	out := make([]PlanDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toPlanDTO(p))
	}
	return out
}

func toCharacterDTO(p voice.Profile, spot string) CharacterDTO {
	return CharacterDTO{
		ID:               p.ID,
		Name:             p.Name,
		Gender:           p.Gender,
		Age:              p.Age,
		AppearancePreset: p.AppearancePreset,
		AppearanceDetail: p.AppearanceDetail,
		Phrases:          p.Phrases,
		Reminder:         p.Reminder,
		PlacedAt:         spot,
	}
}

func toCharacterDTOs(list []voice.Profile, placements map[string]string) []CharacterDTO {
	out := make([]CharacterDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toCharacterDTO(p, placements[p.ID]))
	}
	return out
}
