package graph

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/travel-planner-agent/server/internal/agent/graph/nodes"
	"github.com/travel-planner-agent/server/internal/agent/graph/observers"
	"github.com/travel-planner-agent/server/internal/agent/graph/tools"
	"github.com/travel-planner-agent/server/internal/agent/model"
	logx "github.com/travel-planner-agent/server/pkg/logger"
)

// Runner executes the compiled planner graph and returns the final plan text.
type Runner interface {
	Invoke(ctx context.Context, in model.PlanInput) (string, error)
}

// Config holds everything needed to compose the planner graph end-to-end.
// ChatModel, when set, replaces the Gemini model built from APIKey/BaseURL.
type Config struct {
	APIKey       string
	BaseURL      string
	PlannerModel model.PlannerModelConfig
	Agent        model.AgentConfig
	Toolbox      *tools.Toolbox
	ChatModel    einomodel.ChatModel
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModel    einomodel.ChatModel
	ModelName    string
	Toolbox      *tools.Toolbox
	MaxToolCalls int
	MaxRunSteps  int
}

// GraphBuilder handles the construction of the planner graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.PlanInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.PlanInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.PlanInput) (string, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	if len(out.Extra) > 0 {
		if b, err := sonic.Marshal(out.Extra); err == nil {
			logx.Debug().RawJSON("extra", b).Str("city", in.City).Msg("Plan usage")
		}
	}
	return model.Normalize(model.ContentOf(out)), nil
}

// BuildPlannerGraph creates the chat model, builds the graph and returns a Runner.
func BuildPlannerGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Toolbox == nil {
		return nil, fmt.Errorf("toolbox is nil")
	}

	cm := cfg.ChatModel
	if cm == nil {
		var err error
		cm, err = nodes.NewPlannerChatModel(nodes.ChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			PlannerConf: &cfg.PlannerModel,
		})
		if err != nil {
			return nil, err
		}
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModel:    cm,
		ModelName:    cfg.PlannerModel.Model,
		Toolbox:      cfg.Toolbox,
		MaxToolCalls: cfg.Agent.MaxToolCalls,
		MaxRunSteps:  cfg.Agent.MaxRunSteps,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Planner graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled planner graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.PlanInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModel == nil {
		return nil, fmt.Errorf("chat model is not initialized")
	}
	if config.Toolbox == nil {
		return nil, fmt.Errorf("toolbox is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.PlanInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.setupTools(ctx); err != nil {
		return nil, err
	}
	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// setupTools binds the planner tools to the chat model and adds the tool executor
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	plannerTools := b.config.Toolbox.GetPlannerTools()
	toolInfos, err := tools.GetToolInfos(ctx, plannerTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return fmt.Errorf("failed to get tool infos: %w", err)
	}

	if err := nodes.BindToolsToModel(b.config.ChatModel, toolInfos); err != nil {
		return err
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               plannerTools,
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown or invalid tool call; returning fallback result")
			return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	return b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(b.config.MaxToolCalls)),
	)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	if err := b.graph.AddLambdaNode(nodes.NodePromptBuilder,
		nodes.NewPromptBuilderNode(),
		compose.WithStatePreHandler(nodes.NewPromptBuilderPreHandler()),
	); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodePromptBuilder, err)
	}

	if err := b.graph.AddChatModelNode(nodes.NodePlannerChatModel,
		b.config.ChatModel,
		compose.WithStatePreHandler(nodes.NewPlannerChatModelPreHandler(b.config.MaxToolCalls)),
		compose.WithStatePostHandler(nodes.NewPlannerChatModelPostHandler(b.config.ModelName)),
	); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodePlannerChatModel, err)
	}
	return nil
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodePromptBuilder},
		{nodes.NodePromptBuilder, nodes.NodePlannerChatModel},
		{nodes.NodeToolExecutor, nodes.NodePlannerChatModel},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	decisionBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodePlannerChatModel, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return fmt.Errorf("error adding decision branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.PlanInput, *schema.Message], error) {
	maxSteps := nodes.MaxRunSteps(b.config.MaxToolCalls, b.config.MaxRunSteps)

	runnable, err := b.graph.Compile(ctx,
		compose.WithGraphName("TravelPlanner"),
		compose.WithMaxRunSteps(maxSteps),
	)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Int("max_run_steps", maxSteps).Msg("Graph compiled successfully")
	return runnable, nil
}
