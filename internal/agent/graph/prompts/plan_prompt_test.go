package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travel-planner-agent/server/internal/agent/model"
)

func TestRenderPlanPrompt(t *testing.T) {
	msgs, err := RenderPlanPrompt(context.Background(), model.PlanInput{
		City:    "Paris in May",
		Request: "Plan a 3-day trip to Paris in May",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	msg := msgs[0]
	assert.Equal(t, schema.User, msg.Role)
	assert.Contains(t, msg.Content, "The destination city is STRICTLY: Paris in May")
	assert.Contains(t, msg.Content, "User Request:\nPlan a 3-day trip to Paris in May")
	assert.Contains(t, msg.Content, "Paris in May's cultural & historical significance")
	assert.Contains(t, msg.Content, "(use weather_tool)")
	assert.Contains(t, msg.Content, "(use flight_tool)")
	assert.Contains(t, msg.Content, "(use hotel_tool)")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(msg.Content), "Return clean Markdown only."))
	assert.NotContains(t, msg.Content, "{{")
}
