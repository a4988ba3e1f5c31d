package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ration/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Calories: &mockCalorieService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("nil calorie service returns error", func(t *testing.T) {
		_, err := NewServer(&Ports{Search: &mockSearchService{}})
		assert.ErrorIs(t, err, ErrMissingCalorieService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Calories: &mockCalorieService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	_, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func toolNames(t *testing.T, session *mcp.ClientSession) []string {
	t.Helper()
	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestServer_RegisteredTools(t *testing.T) {
	t.Run("without foraging", func(t *testing.T) {
		s, err := NewServer(&Ports{Search: &mockSearchService{}, Calories: &mockCalorieService{}})
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"search_foods", "daily_calories"}, toolNames(t, connect(t, s)))
	})

	t.Run("with foraging", func(t *testing.T) {
		s, err := NewServer(&Ports{
			Search:   &mockSearchService{},
			Calories: &mockCalorieService{},
			Foraging: &mockForagingService{},
		})
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"search_foods", "daily_calories", "foraging_tips"}, toolNames(t, connect(t, s)))
	})
}

func TestServer_CallDailyCalories(t *testing.T) {
	calories := &mockCalorieService{result: domain.CaloricResult{KcalPerDay: 2763.2}}
	s, err := NewServer(&Ports{Search: &mockSearchService{}, Calories: calories})
	require.NoError(t, err)

	res, err := connect(t, s).CallTool(context.Background(), &mcp.CallToolParams{
		Name: "daily_calories",
		Arguments: map[string]any{
			"height":         70,
			"weight":         180,
			"sex":            "male",
			"activity_level": "very_active",
			"age":            30,
		},
	})

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, 70.0, calories.profile.HeightInches)
	assert.Equal(t, domain.ActivityVeryActive, calories.profile.ActivityLevel)
}
