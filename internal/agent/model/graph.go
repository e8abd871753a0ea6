package model

import (
	"github.com/cloudwego/eino/schema"
)

// AppState stores per-invocation state for the Eino Graph.
// Concurrency model:
//   - Registered as Graph Local State via compose.WithGenLocalState, so every
//     Invoke gets a fresh value and nothing survives between plans.
//   - All reads/writes happen only inside Eino state handlers or
//     compose.ProcessState, which serialize access.
type AppState struct {
	City                 string
	History              []*schema.Message // mutated only inside Eino state handlers
	ToolCallCount        int
	ToolCallLimitReached bool
	ToolCallIDSeq        int // local sequence to synthesize tool_call_id when provider omits

	// Accumulated total LLM cost (USD) across model invocations for this plan
	TotalCostUSD float64
}

// PlanInput is the graph input: the extracted destination and the raw request.
type PlanInput struct {
	City    string `json:"city"`
	Request string `json:"request"`
}
