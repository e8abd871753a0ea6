package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/travel-planner-agent/server/internal/agent/graph/tools"
	"github.com/travel-planner-agent/server/internal/agent/model"
)

//go:embed template/plan_prompt.txt
var planPrompt string

// RenderPlanPrompt renders the structured travel-planning prompt via the Eino
// prompt component, which also fires prompt callbacks. The city is pinned
// verbatim as extracted.
func RenderPlanPrompt(ctx context.Context, in model.PlanInput) ([]*schema.Message, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(planPrompt),
	)
	vars := map[string]any{
		"City":        in.City,
		"Request":     in.Request,
		"WeatherTool": tools.ToolWeather,
		"FlightTool":  tools.ToolFlight,
		"HotelTool":   tools.ToolHotel,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("plan prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return nil, fmt.Errorf("plan prompt render: empty result")
	}
	return msgs, nil
}
