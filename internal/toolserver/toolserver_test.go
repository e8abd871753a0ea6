package toolserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travel-planner-agent/server/internal/agent/graph/tools"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverT, clientT := mcp.NewInMemoryTransports()

	server := New(tools.NewToolbox(tools.NewWeatherLookup(nil)), "test")
	ss, err := server.Connect(ctx, serverT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestListTools(t *testing.T) {
	cs := connect(t)
	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{tools.ToolWeather, tools.ToolFlight, tools.ToolHotel}, names)
}

func TestCallCatalogTools(t *testing.T) {
	cs := connect(t)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: tools.ToolFlight, Arguments: map[string]any{"city": "Paris in May"}})
	require.NoError(t, err)
	assert.Equal(t, tools.FlightOptions("Paris in May"), text(t, res))

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{Name: tools.ToolHotel, Arguments: map[string]any{"city": "Rome"}})
	require.NoError(t, err)
	assert.Equal(t, tools.HotelOptions("Rome"), text(t, res))
}

func TestCallWeatherWithoutProvider(t *testing.T) {
	cs := connect(t)
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: tools.ToolWeather, Arguments: map[string]any{"city": "Oslo"}})
	require.NoError(t, err)
	assert.Equal(t, tools.WeatherUnavailable, text(t, res))
}
