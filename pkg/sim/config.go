// Package sim runs the focus plane estimator against a simulated scene and
// serves the diagnostics dashboard.
package sim

import (
	"slices"

	"github.com/teslashibe/go-focusplane/internal/config"
	"github.com/teslashibe/go-focusplane/pkg/scene"
)

// Config holds all configuration for the simulator.
// Flag parsing is done in cmd/focusplane/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// DebugPlane logs every emitted plane.
	DebugPlane bool

	// ConfigPath is an optional TOML estimator config file.
	ConfigPath string

	// Scenario names the scene rig to build.
	Scenario string

	// FrameRate is the loop rate in Hz.
	FrameRate float64

	// Port is the dashboard port. Empty disables the dashboard.
	Port string
}

// DefaultConfig returns sensible defaults for the simulator.
func DefaultConfig() Config {
	return Config{
		Scenario:  config.DefaultScenario,
		FrameRate: config.DefaultFrameRate,
		Port:      config.DefaultDashboardPort,
	}
}

// ApplyEnv copies environment settings into c.
// Call this before flag parsing so flags take precedence.
func (c *Config) ApplyEnv(env config.Env) {
	c.ConfigPath = env.ConfigPath
	c.Scenario = env.Scenario
	c.FrameRate = env.FrameRate
	c.Port = env.DashboardPort
}

// Validate checks that the configuration can run.
func (c *Config) Validate() error {
	if c.FrameRate <= 0 {
		return &ConfigError{Field: "FrameRate", Message: "frame rate must be positive"}
	}
	if !slices.Contains(scene.Scenarios, c.Scenario) {
		return &ConfigError{Field: "Scenario", Message: "unknown scenario " + c.Scenario}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
