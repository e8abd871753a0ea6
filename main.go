package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/travel-planner-agent/server/internal/agent/graph"
	"github.com/travel-planner-agent/server/internal/agent/graph/tools"
	"github.com/travel-planner-agent/server/internal/agent/model"
	"github.com/travel-planner-agent/server/internal/core"
	"github.com/travel-planner-agent/server/internal/planner"
	"github.com/travel-planner-agent/server/internal/server"
	logx "github.com/travel-planner-agent/server/pkg/logger"
	"github.com/travel-planner-agent/server/pkg/openweather"
)

const shutdownTimeout = 10 * time.Second

// AppConfig defines all configurable parameters of the planner server,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// LLM provider. Not required here: a missing key fails the first plan.
	APIKey  string `envconfig:"GOOGLE_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Planner model.PlannerModelConfig
	Agent   model.AgentConfig

	// Weather provider
	Weather openweather.Config
}

func main() {
	envErr := godotenv.Load(".env")

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Init()
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env, Level: cfg.LogLevel})
	if envErr != nil {
		logx.Warn().Err(envErr).Msg("Could not load .env file")
	}
	gin.SetMode(env.GinMode())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	box := tools.NewToolbox(tools.NewWeatherLookup(cfg.Weather.New()))
	runner, err := graph.BuildPlannerGraph(ctx, graph.Config{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		PlannerModel: cfg.Planner,
		Agent:        cfg.Agent,
		Toolbox:      box,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build planner graph")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(planner.NewService(runner, cfg.Agent.PlanTimeout)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logx.Info().
			Str("addr", srv.Addr).
			Str("environment", env.String()).
			Str("model", cfg.Planner.Model).
			Msg("Travel planner listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("Listen error")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Server shutdown failed")
		return
	}
	logx.Info().Msg("Server exited gracefully")
}
