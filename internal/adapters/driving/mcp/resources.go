package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ration resources.
	uriScheme = "ration://"

	redacted = "********"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Settings != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "settings",
			Name:        "settings",
			Description: "Effective dataset and LLM settings (API key redacted)",
			MIMEType:    "application/json",
		}, s.handleSettingsResource)
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "foods/{query}",
		Name:        "food-search",
		Description: "Foods whose name contains the query",
		MIMEType:    "application/json",
	}, s.handleFoodsResource)
}

// handleSettingsResource returns the resolved settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if settings.LLM.APIKey != "" {
		settings.LLM.APIKey = redacted
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleFoodsResource returns the search result for the query in the URI.
func (s *Server) handleFoodsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractFoodQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching foods: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling foods: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFoodQuery extracts the unescaped query from a URI like ration://foods/{query}.
func extractFoodQuery(uri string) string {
	const prefix = uriScheme + "foods/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	query, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return query
}
