package nodes

import (
	"github.com/travel-planner-agent/server/internal/agent/model"
)

const (
	DefaultMaxToolCalls = 10
	minRunSteps         = 20
)

// normalizeMaxToolCalls returns DefaultMaxToolCalls for non-positive values.
func normalizeMaxToolCalls(n int) int {
	if n <= 0 {
		return DefaultMaxToolCalls
	}
	return n
}

// MaxRunSteps is the graph step bound: override when positive, otherwise
// enough room for every tool round plus the wrap-up turn.
func MaxRunSteps(maxToolCalls, override int) int {
	if override > 0 {
		return override
	}
	steps := 10 + normalizeMaxToolCalls(maxToolCalls)*2
	if steps < minRunSteps {
		steps = minRunSteps
	}
	return steps
}

// checkAndMarkToolLimit marks the state once the budget is used up.
// Returns true only on the call that marks it.
func checkAndMarkToolLimit(state *model.AppState, max int) bool {
	max = normalizeMaxToolCalls(max)
	if !state.ToolCallLimitReached && state.ToolCallCount >= max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// incrementToolCallAndCheck counts one tool round and reports whether it
// went past the budget.
func incrementToolCallAndCheck(state *model.AppState, max int) bool {
	max = normalizeMaxToolCalls(max)
	state.ToolCallCount++
	if state.ToolCallCount > max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}
