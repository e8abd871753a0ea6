package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/travel-planner-agent/server/internal/agent/graph/tools"
	"github.com/travel-planner-agent/server/internal/core"
	"github.com/travel-planner-agent/server/internal/toolserver"
	logx "github.com/travel-planner-agent/server/pkg/logger"
	"github.com/travel-planner-agent/server/pkg/openweather"
)

var version = "dev"

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	Weather     openweather.Config
}

func main() {
	// stdout carries the protocol; everything else goes to stderr.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Init(logx.LoggerOpts{Output: os.Stderr})
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}
	logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(cfg.Environment),
		Level:       cfg.LogLevel,
		Output:      os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	box := tools.NewToolbox(tools.NewWeatherLookup(cfg.Weather.New()))
	server := toolserver.New(box, version)

	logx.Info().Str("server", toolserver.Name).Str("version", version).Msg("Serving tools over stdio")
	if err := toolserver.ServeStdio(ctx, server); err != nil && ctx.Err() == nil {
		logx.Fatal().Err(err).Msg("Tool server stopped")
	}
}
