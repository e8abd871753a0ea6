package nodes

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/travel-planner-agent/server/internal/agent/model"
	logx "github.com/travel-planner-agent/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey      string
	BaseURL     string
	PlannerConf *model.PlannerModelConfig
}

// NewPlannerChatModel returns a Gemini-backed chat model that connects on
// first use. Credentials are therefore not checked at startup: a missing or
// invalid key fails the first plan instead.
func NewPlannerChatModel(config ChatModelConfig) (einomodel.ChatModel, error) {
	if config.PlannerConf == nil {
		return nil, fmt.Errorf("planner model config is nil")
	}
	return newLazyChatModel(func(ctx context.Context) (einomodel.ChatModel, error) {
		return newGeminiChatModel(ctx, config)
	}), nil
}

func newGeminiChatModel(ctx context.Context, config ChatModelConfig) (einomodel.ChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.PlannerConf.Model,
		Temperature: &config.PlannerConf.Temperature,
		MaxTokens:   &config.PlannerConf.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating planner model")
		return nil, fmt.Errorf("error creating planner model: %w", err)
	}

	logx.Debug().Str("model", config.PlannerConf.Model).Msg("Gemini planner model ready")
	return cm, nil
}

// lazyChatModel defers construction of the underlying model until the first
// Generate/Stream. Tools bound before that are replayed onto it.
type lazyChatModel struct {
	factory func(ctx context.Context) (einomodel.ChatModel, error)

	mu    sync.Mutex
	tools []*schema.ToolInfo

	once    sync.Once
	inner   einomodel.ChatModel
	initErr error
}

var _ einomodel.ChatModel = (*lazyChatModel)(nil)

func newLazyChatModel(factory func(ctx context.Context) (einomodel.ChatModel, error)) *lazyChatModel {
	return &lazyChatModel{factory: factory}
}

func (l *lazyChatModel) get(ctx context.Context) (einomodel.ChatModel, error) {
	l.once.Do(func() {
		inner, err := l.factory(ctx)
		if err != nil {
			l.initErr = err
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if len(l.tools) > 0 {
			if err := inner.BindTools(l.tools); err != nil {
				l.initErr = fmt.Errorf("failed to bind tools: %w", err)
				return
			}
		}
		l.inner = inner
	})
	return l.inner, l.initErr
}

func (l *lazyChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	cm, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return cm.Generate(ctx, input, opts...)
}

func (l *lazyChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	cm, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return cm.Stream(ctx, input, opts...)
}

// BindTools records tools for the model. Binding after the model has been
// built is applied directly.
func (l *lazyChatModel) BindTools(tools []*schema.ToolInfo) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tools = tools
	if l.inner != nil {
		return l.inner.BindTools(tools)
	}
	return nil
}

// BindToolsToModel binds tools to the planner chat model
func BindToolsToModel(cm einomodel.ChatModel, tools []*schema.ToolInfo) error {
	if err := cm.BindTools(tools); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}

	logx.Debug().Int("tool_count", len(tools)).Msg("Successfully bound tools to planner model")
	return nil
}
