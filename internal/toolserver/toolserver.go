// Package toolserver publishes the planner tools over the Model Context
// Protocol so other agents can call them.
package toolserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/travel-planner-agent/server/internal/agent/graph/tools"
	logx "github.com/travel-planner-agent/server/pkg/logger"
)

const Name = "travel-tools"

// New returns an MCP server exposing every planner tool backed by box.
func New(box *tools.Toolbox, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil)
	for _, kind := range tools.Kinds {
		mcp.AddTool(server, &mcp.Tool{
			Name:        kind.String(),
			Description: tools.Info(kind).Desc,
		}, handlerFor(box, kind))
	}
	return server
}

func handlerFor(box *tools.Toolbox, kind tools.Kind) mcp.ToolHandlerFor[tools.CityArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args tools.CityArgs) (*mcp.CallToolResult, any, error) {
		logx.Info().Str("tool", kind.String()).Str("city", args.City).Msg("MCP tool call")
		out, err := box.Run(ctx, tools.Call{Kind: kind, City: args.City})
		if err != nil {
			return nil, nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: out}},
		}, nil, nil
	}
}

// ServeStdio serves the tools over stdin/stdout until ctx is done or the
// client disconnects.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
