package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ration/internal/core/domain"
)

const defaultSearchLimit = 25

// SearchInput is the input schema for the search_foods tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"case-insensitive substring of the food name"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of foods to return (default 25)"`
}

// SearchOutput is the output schema for the search_foods tool.
type SearchOutput struct {
	Foods        []FoodOutput `json:"foods"`
	Count        int          `json:"count"`
	Truncated    bool         `json:"truncated"`
	TotalEntries int          `json:"total_entries"`
}

// FoodOutput is a single matching food.
type FoodOutput struct {
	Name     string   `json:"name"`
	Calories *float64 `json:"calories,omitempty"`
}

// ProfileInput describes the person a calorie or foraging request is for.
type ProfileInput struct {
	Height        float64 `json:"height" jsonschema:"height in inches"`
	Weight        float64 `json:"weight" jsonschema:"weight in pounds"`
	Sex           string  `json:"sex" jsonschema:"male or female"`
	ActivityLevel string  `json:"activity_level" jsonschema:"sedentary or very_active"`
	Age           int     `json:"age" jsonschema:"age in years"`
}

func (p ProfileInput) profile(location string) domain.Profile {
	return domain.Profile{
		HeightInches:  p.Height,
		WeightLbs:     p.Weight,
		Sex:           domain.Sex(p.Sex),
		ActivityLevel: domain.ActivityLevel(p.ActivityLevel),
		Age:           p.Age,
		Location:      location,
	}
}

// CaloriesOutput is the output schema for the daily_calories tool.
type CaloriesOutput struct {
	CaloricIntake int     `json:"caloric_intake"`
	Exact         float64 `json:"exact"`
}

// ForagingInput is the input schema for the foraging_tips tool.
type ForagingInput struct {
	Height        float64 `json:"height" jsonschema:"height in inches"`
	Weight        float64 `json:"weight" jsonschema:"weight in pounds"`
	Sex           string  `json:"sex" jsonschema:"male or female"`
	ActivityLevel string  `json:"activity_level" jsonschema:"sedentary or very_active"`
	Age           int     `json:"age" jsonschema:"age in years"`
	Location      string  `json:"location" jsonschema:"where the person is, e.g. a city or region"`
}

func (f ForagingInput) profile() domain.Profile {
	return ProfileInput{
		Height:        f.Height,
		Weight:        f.Weight,
		Sex:           f.Sex,
		ActivityLevel: f.ActivityLevel,
		Age:           f.Age,
	}.profile(f.Location)
}

// ForagingOutput is the output schema for the foraging_tips tool.
type ForagingOutput struct {
	Tips string `json:"tips"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_foods",
		Description: "Search the food dataset by name",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "daily_calories",
		Description: "Estimate daily caloric needs (Mifflin-St Jeor)",
	}, s.handleCalories)

	if s.ports.Foraging != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "foraging_tips",
			Description: "Suggest foraging strategies for a person at a location",
		}, s.handleForaging)
	}
}

// handleSearch handles the search_foods tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	result, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	n := min(limit, len(result.Results))
	output := SearchOutput{
		Foods:        make([]FoodOutput, n),
		Count:        n,
		Truncated:    result.Truncated || n < len(result.Results),
		TotalEntries: result.Stats.TotalEntries,
	}
	for i := range n {
		output.Foods[i] = FoodOutput{
			Name:     result.Results[i].Name,
			Calories: result.Results[i].Calories,
		}
	}

	return nil, output, nil
}

// handleCalories handles the daily_calories tool invocation.
func (s *Server) handleCalories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProfileInput,
) (*mcp.CallToolResult, CaloriesOutput, error) {
	result, err := s.ports.Calories.DailyCalories(ctx, input.profile(""))
	if err != nil {
		return nil, CaloriesOutput{}, err
	}
	return nil, CaloriesOutput{CaloricIntake: result.Rounded(), Exact: result.KcalPerDay}, nil
}

// handleForaging handles the foraging_tips tool invocation. Generation
// failures are reported as tool errors rather than replaced with the
// fallback text shown in the web form.
func (s *Server) handleForaging(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ForagingInput,
) (*mcp.CallToolResult, ForagingOutput, error) {
	profile := input.profile()
	if err := profile.Validate(); err != nil {
		return nil, ForagingOutput{}, err
	}

	tips, err := s.ports.Foraging.GenerateTips(ctx, profile)
	if err != nil {
		return nil, ForagingOutput{}, err
	}
	return nil, ForagingOutput{Tips: tips}, nil
}
