package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Snow-evo/flashback-atack/pkg/plans"
	"github.com/Snow-evo/flashback-atack/pkg/triggerlog"
	"github.com/Snow-evo/flashback-atack/pkg/voice"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerToggleFavoriteTool(srv, svc)
	registerListFavoritesTool(srv, svc)
	registerAddLogTool(srv, svc)
	registerUpdateLogTool(srv, svc)
	registerDeleteLogTool(srv, svc)
	registerListLogsTool(srv, svc)
	registerGetLogTool(srv, svc)
	registerAddPlanTool(srv, svc)
	registerUpdatePlanTool(srv, svc)
	registerDeletePlanTool(srv, svc)
	registerListPlansTool(srv, svc)
	registerSaveCharacterTool(srv, svc)
	registerDeleteCharacterTool(srv, svc)
	registerPlaceCharacterTool(srv, svc)
	registerListCharactersTool(srv, svc)
	registerRoadmapTool(srv, svc)
	registerMarkStageTool(srv, svc)
	registerStageNoteTool(srv, svc)
}

func registerToggleFavoriteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_favorite",
		mcp.WithDescription("Toggle the favorite state of a self-help tip."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Tip identifier, for example tip-01 or a bare number."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		favorited, err := svc.ToggleFavorite(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":        id,
			"favorited": favorited,
		})
	})
}

func registerListFavoritesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_favorites",
		mcp.WithDescription("List the favorited self-help tips."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := svc.Favorites(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"favorites": ids,
			"count":     len(ids),
		})
	})
}

func logInput(request mcp.CallToolRequest) (triggerlog.Input, error) {
	var args struct {
		Triggers     []string `json:"triggers"`
		TriggerOther string   `json:"triggerOther"`
		Details      string   `json:"details"`
		Emotions     []string `json:"emotions"`
		EmotionOther string   `json:"emotionOther"`
		Actions      []string `json:"actions"`
		ActionOther  string   `json:"actionOther"`
	}
	if err := request.BindArguments(&args); err != nil {
		return triggerlog.Input{}, fmt.Errorf("invalid arguments: %w", err)
	}
	return triggerlog.Input{
		Triggers:     args.Triggers,
		TriggerOther: args.TriggerOther,
		Details:      args.Details,
		Emotions:     args.Emotions,
		EmotionOther: args.EmotionOther,
		Actions:      args.Actions,
		ActionOther:  args.ActionOther,
	}, nil
}

func registerAddLogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_trigger_log",
		mcp.WithDescription("Record a flashback trigger log entry."),
		mcp.WithArray("triggers",
			mcp.Description("Trigger labels; at least one trigger or triggerOther is required."),
		),
		mcp.WithString("triggerOther",
			mcp.Description("Free-text trigger when none of the labels fit."),
		),
		mcp.WithString("details",
			mcp.Description("What happened, up to 1000 characters."),
		),
		mcp.WithArray("emotions",
			mcp.Description("Emotion labels."),
		),
		mcp.WithString("emotionOther",
			mcp.Description("Free-text emotion."),
		),
		mcp.WithArray("actions",
			mcp.Description("Coping action labels."),
		),
		mcp.WithString("actionOther",
			mcp.Description("Free-text coping action."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := logInput(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.AddLog(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateLogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_trigger_log",
		mcp.WithDescription("Replace the fields of an existing trigger log entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to modify."),
		),
		mcp.WithArray("triggers",
			mcp.Description("Trigger labels; at least one trigger or triggerOther is required."),
		),
		mcp.WithString("triggerOther",
			mcp.Description("Free-text trigger."),
		),
		mcp.WithString("details",
			mcp.Description("What happened, up to 1000 characters."),
		),
		mcp.WithArray("emotions",
			mcp.Description("Emotion labels."),
		),
		mcp.WithString("emotionOther",
			mcp.Description("Free-text emotion."),
		),
		mcp.WithArray("actions",
			mcp.Description("Coping action labels."),
		),
		mcp.WithString("actionOther",
			mcp.Description("Free-text coping action."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in, err := logInput(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.UpdateLog(ctx, id, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteLogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_trigger_log",
		mcp.WithDescription("Delete one trigger log entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		removed, err := svc.DeleteLog(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"removed": removed,
		})
	})
}

func registerListLogsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_trigger_logs",
		mcp.WithDescription("List trigger log entries, newest first."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := svc.ListLogs(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerGetLogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_trigger_log",
		mcp.WithDescription("Fetch a single trigger log entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.LogByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func planInput(request mcp.CallToolRequest) (plans.Input, error) {
	var args struct {
		CharacterName    string `json:"characterName"`
		CharacterPersona string `json:"characterPersona"`
		CharacterSupport string `json:"characterSupport"`
		SupportScene     string `json:"supportScene"`
		SupportLocation  string `json:"supportLocation"`
		SupportAction    string `json:"supportAction"`
	}
	if err := request.BindArguments(&args); err != nil {
		return plans.Input{}, fmt.Errorf("invalid arguments: %w", err)
	}
	return plans.Input{
		CharacterName:    args.CharacterName,
		CharacterPersona: args.CharacterPersona,
		CharacterSupport: args.CharacterSupport,
		SupportScene:     args.SupportScene,
		SupportLocation:  args.SupportLocation,
		SupportAction:    args.SupportAction,
	}, nil
}

func registerAddPlanTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_plan",
		mcp.WithDescription("Save an externalization plan for a supportive character."),
		mcp.WithString("characterName",
			mcp.Required(),
			mcp.Description("Name of the character, up to 40 characters."),
		),
		mcp.WithString("characterPersona",
			mcp.Description("How the character speaks and carries itself."),
		),
		mcp.WithString("characterSupport",
			mcp.Description("How the character supports you."),
		),
		mcp.WithString("supportScene",
			mcp.Required(),
			mcp.Description("The scene where the character should appear."),
		),
		mcp.WithString("supportLocation",
			mcp.Description("Where in the scene the character stands."),
		),
		mcp.WithString("supportAction",
			mcp.Description("What the character does there."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := planInput(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.AddPlan(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdatePlanTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_plan",
		mcp.WithDescription("Replace the fields of a saved externalization plan."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Plan identifier to modify."),
		),
		mcp.WithString("characterName",
			mcp.Required(),
			mcp.Description("Name of the character, up to 40 characters."),
		),
		mcp.WithString("characterPersona",
			mcp.Description("How the character speaks and carries itself."),
		),
		mcp.WithString("characterSupport",
			mcp.Description("How the character supports you."),
		),
		mcp.WithString("supportScene",
			mcp.Required(),
			mcp.Description("The scene where the character should appear."),
		),
		mcp.WithString("supportLocation",
			mcp.Description("Where in the scene the character stands."),
		),
		mcp.WithString("supportAction",
			mcp.Description("What the character does there."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in, err := planInput(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.UpdatePlan(ctx, id, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeletePlanTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_plan",
		mcp.WithDescription("Delete one externalization plan."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Plan identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		removed, err := svc.DeletePlan(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"removed": removed,
		})
	})
}

func registerListPlansTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_plans",
		mcp.WithDescription("List saved externalization plans, newest first."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.ListPlans(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"plans": list,
			"count": len(list),
		})
	})
}

func registerSaveCharacterTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_character",
		mcp.WithDescription("Create a voice character profile, or update one when id is given."),
		mcp.WithString("id",
			mcp.Description("Profile identifier; omit to create a new profile."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Character name, up to 40 characters."),
		),
		mcp.WithString("gender",
			mcp.Description("Perceived gender of the voice."),
			mcp.Enum("female", "male", "neutral", "other"),
		),
		mcp.WithString("age",
			mcp.Description("Apparent age, 1 to 130."),
		),
		mcp.WithString("appearancePreset",
			mcp.Description("Appearance preset; custom takes a free-text detail."),
			mcp.Enum("shadow", "child", "mentor", "relative", "future", "custom"),
		),
		mcp.WithString("appearanceDetail",
			mcp.Description("Free-text appearance, used with the custom preset."),
		),
		mcp.WithString("phrases",
			mcp.Description("Things the voice tends to say."),
		),
		mcp.WithString("reminder",
			mcp.Description("What to remember when this voice shows up."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID               string `json:"id"`
			Name             string `json:"name"`
			Gender           string `json:"gender"`
			Age              string `json:"age"`
			AppearancePreset string `json:"appearancePreset"`
			AppearanceDetail string `json:"appearanceDetail"`
			Phrases          string `json:"phrases"`
			Reminder         string `json:"reminder"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.SaveCharacter(ctx, args.ID, voice.Input{
			Name:             args.Name,
			Gender:           args.Gender,
			Age:              args.Age,
			AppearancePreset: args.AppearancePreset,
			AppearanceDetail: args.AppearanceDetail,
			Phrases:          args.Phrases,
			Reminder:         args.Reminder,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteCharacterTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_character",
		mcp.WithDescription("Delete a voice character profile and its placement."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Profile identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		removed, err := svc.DeleteCharacter(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"removed": removed,
		})
	})
}

func registerPlaceCharacterTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"place_character",
		mcp.WithDescription("Place a character at a spot in the imagined room, or clear its placement."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Profile identifier to place."),
		),
		mcp.WithString("spot",
			mcp.Description("Room spot; omit or leave empty to clear the placement."),
			mcp.Enum("window", "sofa", "shelf", "door"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		spot := request.GetString("spot", "")

		dto, err := svc.PlaceCharacter(ctx, id, spot)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListCharactersTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_characters",
		mcp.WithDescription("List voice character profiles with their room placements."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.ListCharacters(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"characters": list,
			"count":      len(list),
		})
	})
}

func registerRoadmapTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_roadmap",
		mcp.WithDescription("Show the recovery roadmap with the current stage marker and notes."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stages, err := svc.Roadmap(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"stages": stages,
		})
	})
}

func registerMarkStageTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"mark_stage",
		mcp.WithDescription("Mark the current roadmap stage; marking the same stage again clears it."),
		mcp.WithString("stage",
			mcp.Required(),
			mcp.Description("Stage identifier."),
			mcp.Enum("safety", "stabilization", "remembrance", "reconnection", "growth"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stage, err := request.RequireString("stage")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		stages, err := svc.MarkStage(ctx, stage)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"stages": stages,
		})
	})
}

func registerStageNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_stage_note",
		mcp.WithDescription("Write the note for a roadmap stage; empty text clears the note."),
		mcp.WithString("stage",
			mcp.Required(),
			mcp.Description("Stage identifier."),
			mcp.Enum("safety", "stabilization", "remembrance", "reconnection", "growth"),
		),
		mcp.WithString("text",
			mcp.Description("Note text, up to 1000 characters."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stage, err := request.RequireString("stage")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text := request.GetString("text", "")

		if err := svc.SetStageNote(ctx, stage, text); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"stage": stage,
			"note":  text,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
