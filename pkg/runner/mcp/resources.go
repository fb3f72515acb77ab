package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerFavoritesResource(srv, svc)
	registerLogsResource(srv, svc)
	registerLogTemplate(srv, svc)
	registerPlansResource(srv, svc)
	registerCharactersResource(srv, svc)
	registerRoadmapResource(srv, svc)
}

func registerFavoritesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"flashback://favorites",
		"Favorite Tips",
		mcp.WithResourceDescription("Identifiers of the favorited self-help tips."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := svc.Favorites(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"favorites": ids,
			"count":     len(ids),
		})
	})
}

func registerLogsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"flashback://logs",
		"Trigger Logs",
		mcp.WithResourceDescription("Trigger log entries, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := svc.ListLogs(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerLogTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"flashback://logs/{id}",
		"Trigger Log Entry",
		mcp.WithTemplateDescription("A single trigger log entry."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("entry id is required")
		}

		dto, err := svc.LogByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"entry": dto,
		})
	})
}

func registerPlansResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"flashback://plans",
		"Externalization Plans",
		mcp.WithResourceDescription("Saved externalization plans, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := svc.ListPlans(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"plans": list,
			"count": len(list),
		})
	})
}

func registerCharactersResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"flashback://characters",
		"Voice Characters",
		mcp.WithResourceDescription("Voice character profiles with room placements."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := svc.ListCharacters(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"characters": list,
			"count":      len(list),
		})
	})
}

func registerRoadmapResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"flashback://roadmap",
		"Recovery Roadmap",
		mcp.WithResourceDescription("Roadmap stages with the current marker and notes."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		stages, err := svc.Roadmap(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"stages": stages,
		})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
