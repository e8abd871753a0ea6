package model

import "time"

// ================ Config ================
type PlannerModelConfig struct {
	Model       string  `envconfig:"PLANNER_MODEL" default:"gemini-flash-latest"`
	MaxTokens   int     `envconfig:"PLANNER_MAX_TOKENS" default:"4096"`
	Temperature float32 `envconfig:"PLANNER_TEMPERATURE" default:"0.3"`
}

type AgentConfig struct {
	MaxToolCalls int `envconfig:"AGENT_MAX_TOOL_CALLS" default:"10"`
	// MaxRunSteps bounds graph node executions; 0 derives it from MaxToolCalls.
	MaxRunSteps int           `envconfig:"AGENT_MAX_RUN_STEPS" default:"0"`
	PlanTimeout time.Duration `envconfig:"PLAN_TIMEOUT" default:"3m"`
}
