// Package config provides process configuration helpers for go-focusplane commands.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Defaults for the simulator process.
const (
	DefaultDashboardPort = "8090"
	DefaultFrameRate     = 60.0
	DefaultScenario      = "gaze"
	DefaultLogLevel      = "info"
)

// ErrInvalidFrameRate is returned when FOCUS_FRAME_RATE is not positive.
var ErrInvalidFrameRate = errors.New("frame rate must be positive")

// Env holds settings read from the environment.
// Command-line flags take precedence over these values.
//
// Variables set to the empty string get their envDefault, so FOCUS_DASHBOARD_PORT=""
// still yields 8090. Disabling the dashboard takes the -port "" flag.
type Env struct {
	LogLevel      string  `env:"FOCUS_LOG_LEVEL" envDefault:"info"`
	ConfigPath    string  `env:"FOCUS_CONFIG"`
	DashboardPort string  `env:"FOCUS_DASHBOARD_PORT" envDefault:"8090"`
	FrameRate     float64 `env:"FOCUS_FRAME_RATE" envDefault:"60"`
	Scenario      string  `env:"FOCUS_SCENARIO" envDefault:"gaze"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FrameRate <= 0 {
		return Env{}, fmt.Errorf("FOCUS_FRAME_RATE=%v: %w", cfg.FrameRate, ErrInvalidFrameRate)
	}
	return cfg, nil
}

// DashboardURL returns the local dashboard base URL for a port.
func DashboardURL(port string) string {
	return fmt.Sprintf("http://localhost:%s", port)
}

// PlaneStreamURL returns the websocket URL of the plane stream for a port.
func PlaneStreamURL(port string) string {
	return fmt.Sprintf("ws://localhost:%s/ws/plane", port)
}
