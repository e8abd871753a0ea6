package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/travel-planner-agent/server/internal/agent/graph/prompts"
	"github.com/travel-planner-agent/server/internal/agent/model"
	logx "github.com/travel-planner-agent/server/pkg/logger"
)

const (
	NodePromptBuilder    = "PromptBuilder"
	NodePlannerChatModel = "PlannerChatModel"
	NodeToolExecutor     = "ToolExecutor"
)

// NewPromptBuilderPreHandler creates the pre-handler for PromptBuilder node
func NewPromptBuilderPreHandler() func(context.Context, model.PlanInput, *model.AppState) (model.PlanInput, error) {
	return func(ctx context.Context, in model.PlanInput, s *model.AppState) (model.PlanInput, error) {
		s.City = in.City
		s.History = nil
		s.ToolCallCount = 0
		s.ToolCallLimitReached = false
		s.ToolCallIDSeq = 0
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewPromptBuilderNode seeds the conversation with the single structured user prompt.
func NewPromptBuilderNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.PlanInput) ([]*schema.Message, error) {
		msgs, err := prompts.RenderPlanPrompt(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("render plan prompt: %w", err)
		}
		return msgs, nil
	})
}

// NewPlannerChatModelPreHandler appends the node input to the conversation and
// hands the whole history to the model.
func NewPlannerChatModelPreHandler(maxToolCalls int) func(context.Context, []*schema.Message, *model.AppState) ([]*schema.Message, error) {
	return func(ctx context.Context, in []*schema.Message, state *model.AppState) ([]*schema.Message, error) {
		// Gemini may omit tool_call_id; tool results need one to pair with their call.
		if len(in) > 0 {
			last := in[len(in)-1]
			if last != nil && last.Role == schema.Tool && strings.TrimSpace(last.ToolCallID) == "" {
				for i := len(state.History) - 1; i >= 0; i-- {
					msg := state.History[i]
					if msg == nil || msg.Role != schema.Assistant || len(msg.ToolCalls) == 0 {
						continue
					}
					if id := msg.ToolCalls[0].ID; strings.TrimSpace(id) != "" {
						last.ToolCallID = id
					}
					break
				}
			}
		}

		state.History = append(state.History, in...)

		if checkAndMarkToolLimit(state, maxToolCalls) {
			maxToolCalls = normalizeMaxToolCalls(maxToolCalls)
			state.History = append(state.History, &schema.Message{
				Role: schema.System,
				Content: fmt.Sprintf(
					"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
						"Write the travel plan now using the information you already gathered, "+
						"and mention any section you could not complete.",
					maxToolCalls,
				),
			})
		}

		logx.Debug().Str("city", state.City).Int("messages", len(state.History)).Msg("Planner thinking...")
		return state.History, nil
	}
}

// NewPlannerChatModelPostHandler records usage cost, normalizes tool call IDs
// and appends the model output to the conversation.
func NewPlannerChatModelPostHandler(modelName string) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		if out == nil {
			return nil, fmt.Errorf("planner model returned no message")
		}

		recordUsage(out, state, modelName)

		for i := range out.ToolCalls {
			if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
				state.ToolCallIDSeq++
				out.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
			}
		}

		state.History = append(state.History, out)

		if len(out.ToolCalls) > 0 {
			names := make([]string, 0, len(out.ToolCalls))
			for _, tc := range out.ToolCalls {
				names = append(names, tc.Function.Name)
			}
			logx.Debug().Strs("tools", names).Msg("Calling tools")
		} else {
			logx.Debug().Str("city", state.City).Msg("Travel plan ready")
		}
		return out, nil
	}
}

func recordUsage(out *schema.Message, state *model.AppState, modelName string) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
	if out.Extra == nil {
		out.Extra = map[string]any{}
	}
	out.Extra["usage_cost"] = map[string]any{
		"currency":          "USD",
		"model":             modelName,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
		"input_cost":        inC,
		"output_cost":       outC,
		"total_cost":        totalC,
	}
	state.TotalCostUSD += totalC
	out.Extra["usage_cost_total_usd"] = state.TotalCostUSD

	logx.Debug().
		Str("city", state.City).
		Str("node", NodePlannerChatModel).
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("total_cost_usd", totalC).
		Float64("running_cost_usd", state.TotalCostUSD).
		Msg("LLM usage")
}

// NewToolExecutorCondition routes to the tool executor while the model keeps
// asking for tools, and to END once it answers or the tool budget is spent.
func NewToolExecutorCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		var limitReached bool
		if err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			limitReached = state.ToolCallLimitReached
			return nil
		}); err != nil {
			return "", fmt.Errorf("read graph state: %w", err)
		}

		if limitReached {
			logx.Debug().Msg("Tool limit reached previously - routing to end")
			return compose.END, nil
		}
		if input != nil && len(input.ToolCalls) > 0 {
			logx.Debug().Int("tool_count", len(input.ToolCalls)).Msg("Routing to ToolExecutor")
			return NodeToolExecutor, nil
		}
		return compose.END, nil
	}
}

// NewToolExecutorPreHandler counts tool rounds against the budget.
func NewToolExecutorPreHandler(maxToolCalls int) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, in *schema.Message, state *model.AppState) (*schema.Message, error) {
		exceeded := incrementToolCallAndCheck(state, maxToolCalls)

		logx.Debug().
			Int("tool_call_count", state.ToolCallCount).
			Str("city", state.City).
			Msg("Tool execution attempt")

		if exceeded {
			logx.Warn().
				Int("tool_call_count", state.ToolCallCount).
				Int("max_tool_calls", normalizeMaxToolCalls(maxToolCalls)).
				Str("city", state.City).
				Msg("Tool call limit exceeded - flagging and continuing")
		}
		return in, nil
	}
}
