package mcp

import (
	"context"
	"testing"

	"github.com/Snow-evo/flashback-atack/pkg/plans"
	"github.com/Snow-evo/flashback-atack/pkg/store"
	"github.com/Snow-evo/flashback-atack/pkg/triggerlog"
	"github.com/Snow-evo/flashback-atack/pkg/voice"
)

func TestServiceToggleFavorite(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	on, err := svc.ToggleFavorite(ctx, "tip-3")
	if err != nil || !on {
		t.Fatalf("expected toggle on, got %v, %v", on, err)
	}

	ids, err := svc.Favorites(ctx)
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if len(ids) != 1 || ids[0] != "tip-03" {
		t.Fatalf("expected canonical id listed, got %v", ids)
	}
}

func TestServiceLogLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	dto, err := svc.AddLog(ctx, triggerlog.Input{
		Triggers: []string{"noise"},
		Details:  "it passed after a minute",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if dto.ID == "" || dto.CreatedAt == "" {
		t.Fatalf("expected identity in DTO, got %+v", dto)
	}

	got, err := svc.LogByID(ctx, dto.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Details != "it passed after a minute" {
		t.Fatalf("expected details round-tripped, got %q", got.Details)
	}

	updated, err := svc.UpdateLog(ctx, dto.ID, triggerlog.Input{
		Triggers: []string{"light"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != dto.ID {
		t.Fatalf("expected id stable across update")
	}

	removed, err := svc.DeleteLog(ctx, dto.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v, %v", removed, err)
	}
	entries, _ := svc.ListLogs(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected empty log, got %v", entries)
	}
}

func TestServiceLogValidationError(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	if _, err := svc.AddLog(ctx, triggerlog.Input{Details: "no trigger"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestServicePlanLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	dto, err := svc.AddPlan(ctx, plans.Input{
		CharacterName: "Grandma",
		SupportScene:  "at night",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	list, _ := svc.ListPlans(ctx)
	if len(list) != 1 || list[0].ID != dto.ID {
		t.Fatalf("expected plan listed, got %v", list)
	}

	removed, err := svc.DeletePlan(ctx, dto.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v, %v", removed, err)
	}
}

func TestServiceCharacterPlacement(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	dto, err := svc.SaveCharacter(ctx, "", voice.Input{Name: "The Judge"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	placed, err := svc.PlaceCharacter(ctx, dto.ID, "window")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if placed.PlacedAt != "window" {
		t.Fatalf("expected window placement, got %q", placed.PlacedAt)
	}

	cleared, err := svc.PlaceCharacter(ctx, dto.ID, "")
	if err != nil {
		t.Fatalf("unplace: %v", err)
	}
	if cleared.PlacedAt != "" {
		t.Fatalf("expected placement cleared, got %q", cleared.PlacedAt)
	}
}

func TestServiceRoadmap(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	stages, err := svc.MarkStage(ctx, "remembrance")
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	found := false
	for _, s := range stages {
		if s.ID == "remembrance" && s.Current {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected remembrance current, got %v", stages)
	}

	if err := svc.SetStageNote(ctx, "remembrance", "slow progress"); err != nil {
		t.Fatalf("note: %v", err)
	}
	stages, _ = svc.Roadmap(ctx)
	for _, s := range stages {
		if s.ID == "remembrance" && s.Note != "slow progress" {
			t.Fatalf("expected note attached, got %+v", s)
		}
	}
}

func TestServiceRequiresPersistence(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.Favorites(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
}
