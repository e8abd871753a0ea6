package logx

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/travel-planner-agent/server/internal/core"
)

func TestInitProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Production, Output: &buf})

	Debug().Msg("hidden")
	Info().Str("city", "Paris").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"city":"Paris"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestInitLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Production, Level: "warn", Output: &buf})
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel())

	Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestInitUnknownLevelKeepsDefault(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Development, Level: "loud", Output: &buf})
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())
}
