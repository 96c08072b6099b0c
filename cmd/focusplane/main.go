// Focus plane simulator - drives the stabilization plane estimator against a
// scripted scene and serves a live diagnostics dashboard
package main

import (
	"context"
	"flag"
	stdlog "log"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-focusplane/internal/config"
	"github.com/teslashibe/go-focusplane/internal/log"
	"github.com/teslashibe/go-focusplane/pkg/sim"
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		stdlog.Fatalf("❌ Environment error: %v", err)
	}

	cfg := parseFlags(env)

	level := env.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)

	app, err := sim.New(cfg)
	if err != nil {
		stdlog.Fatalf("❌ Configuration error: %v", err)
	}

	if err := app.Init(); err != nil {
		stdlog.Fatalf("❌ Initialization failed: %v", err)
	}
	defer app.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		stdlog.Fatalf("❌ Runtime error: %v", err)
	}
}

// parseFlags parses command line flags over the environment settings.
func parseFlags(env config.Env) sim.Config {
	cfg := sim.DefaultConfig()
	cfg.ApplyEnv(env)

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	debugPlane := flag.Bool("debug-plane", false, "Log every emitted focus plane")
	configPath := flag.String("config", cfg.ConfigPath, "TOML estimator config file (overrides FOCUS_CONFIG)")
	scenario := flag.String("scenario", cfg.Scenario, "Scene to simulate: gaze, override, fixed")
	fps := flag.Float64("fps", cfg.FrameRate, "Frame rate in Hz (overrides FOCUS_FRAME_RATE)")
	port := flag.String("port", cfg.Port, "Dashboard port, empty to disable (overrides FOCUS_DASHBOARD_PORT)")
	flag.Parse()

	cfg.Debug, cfg.DebugPlane = *debug, *debugPlane
	cfg.ConfigPath, cfg.Scenario = *configPath, *scenario
	cfg.FrameRate, cfg.Port = *fps, *port
	return cfg
}
