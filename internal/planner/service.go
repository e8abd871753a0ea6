// Package planner turns a free-text travel request into a Markdown plan.
package planner

import (
	"context"
	"strings"
	"time"

	"github.com/travel-planner-agent/server/internal/agent/graph"
	"github.com/travel-planner-agent/server/internal/agent/model"
	errx "github.com/travel-planner-agent/server/internal/core/error"
	"github.com/travel-planner-agent/server/internal/travel"
	logx "github.com/travel-planner-agent/server/pkg/logger"
)

// Plan is a generated travel plan.
type Plan struct {
	City     string `json:"city"`
	Markdown string `json:"markdown"`
}

// Service validates requests and runs the planner graph.
type Service struct {
	runner  graph.Runner
	timeout time.Duration
}

// NewService returns a Service. A non-positive timeout disables the deadline.
func NewService(runner graph.Runner, timeout time.Duration) *Service {
	return &Service{runner: runner, timeout: timeout}
}

// Plan returns errx.ErrEmptyRequest or errx.ErrCityNotFound without calling
// the model when text is blank or names no destination.
func (s *Service) Plan(ctx context.Context, text string) (*Plan, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errx.ErrEmptyRequest
	}
	city, ok := travel.ExtractCity(text)
	if !ok {
		logx.Debug().Str("request", text).Msg("No destination in request")
		return nil, errx.ErrCityNotFound
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	markdown, err := s.runner.Invoke(ctx, model.PlanInput{City: city, Request: text})
	if err != nil {
		logx.Error().Err(err).Str("city", city).Dur("elapsed", time.Since(start)).Msg("Plan generation failed")
		return nil, errx.WrapModel(err)
	}

	logx.Info().Str("city", city).Dur("elapsed", time.Since(start)).Int("length", len(markdown)).Msg("Plan generated")
	return &Plan{City: city, Markdown: markdown}, nil
}
