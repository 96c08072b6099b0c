package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/teslashibe/go-focusplane/internal/config"
	"github.com/teslashibe/go-focusplane/internal/log"
	"github.com/teslashibe/go-focusplane/pkg/debug"
	"github.com/teslashibe/go-focusplane/pkg/focus"
	"github.com/teslashibe/go-focusplane/pkg/frameloop"
	"github.com/teslashibe/go-focusplane/pkg/scene"
	"github.com/teslashibe/go-focusplane/pkg/web"
)

// ErrNotInitialized is returned by Run when Init has not been called.
var ErrNotInitialized = errors.New("sim: not initialized")

// Compositor stands in for the display compositor. It keeps the most recent
// focus point handed to it.
type Compositor struct {
	mu       sync.Mutex
	position r3.Vec
	normal   r3.Vec
	velocity r3.Vec
	frames   uint64
}

// SetFocusPointForFrame implements focus.FrameHinter.
func (c *Compositor) SetFocusPointForFrame(position, normal, velocity r3.Vec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position, c.normal, c.velocity = position, normal, velocity
	c.frames++
}

// Last returns the most recent focus point and how many were received.
func (c *Compositor) Last() (position, normal, velocity r3.Vec, frames uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position, c.normal, c.velocity, c.frames
}

// App is the simulator application.
type App struct {
	config Config
	logger *slog.Logger

	store      *focus.Store
	rig        *scene.Rig
	compositor *Compositor
	estimator  *focus.Estimator
	loop       *frameloop.Loop

	// Web dashboard
	webServer *web.Server
}

// New creates a simulator with the given configuration.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug.Enabled = cfg.Debug
	debug.Plane = cfg.DebugPlane

	return &App{
		config: cfg,
		logger: log.With("component", "sim"),
	}, nil
}

// Init builds the scene, the estimator and the dashboard.
// Call this after New() and before Run().
func (a *App) Init() error {
	estCfg := focus.DefaultConfig()
	if a.config.ConfigPath != "" {
		loaded, err := focus.LoadConfigFile(a.config.ConfigPath)
		if err != nil {
			return fmt.Errorf("estimator config: %w", err)
		}
		estCfg = loaded
		a.logger.Info("loaded estimator config", "path", a.config.ConfigPath)
	}
	a.store = focus.NewStore(estCfg)

	rig, err := scene.NewScenario(a.config.Scenario)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	a.rig = rig
	debug.Log("scene %s: %d surfaces, gaze=%v, override=%v, sway=%.2fm@%.2fHz",
		rig.Name, len(rig.World.Surfaces), rig.Gaze.Enabled, rig.Orbiter.Active,
		rig.Camera.SwayAmplitude, rig.Camera.SwayHz)

	opts := append(rig.Options(), focus.WithConfigSource(a.store))
	if a.config.Port != "" {
		a.webServer = web.NewServer(a.config.Port, a.store)
		opts = append(opts, focus.WithObserver(a.webServer))
	}

	a.compositor = &Compositor{}
	a.estimator = focus.New(a.compositor, opts...)

	a.loop = frameloop.ForRate(a.config.FrameRate)
	a.loop.OnUpdate(rig)
	a.loop.OnLate(a.estimator)

	a.logger.Info("simulator ready",
		"scenario", rig.Name,
		"fps", a.config.FrameRate,
		"mode", estCfg.Mode.String(),
	)
	return nil
}

// Run starts the dashboard and the frame loop.
// Blocks until context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.loop == nil {
		return ErrNotInitialized
	}

	if a.webServer != nil {
		a.webServer.StartAsync()
		a.logger.Info("dashboard", "url", config.DashboardURL(a.config.Port))
	}

	a.loop.Run(ctx)
	return nil
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown() {
	if a.webServer != nil {
		if err := a.webServer.Shutdown(); err != nil {
			a.logger.Warn("dashboard shutdown", "error", err)
		}
	}
	if a.estimator != nil {
		a.logger.Info("simulator stopped", "planes", a.estimator.Frames())
	}
}

// Store returns the live estimator config.
func (a *App) Store() *focus.Store {
	return a.store
}

// Estimator returns the focus plane estimator.
func (a *App) Estimator() *focus.Estimator {
	return a.estimator
}

// Compositor returns the focus point sink.
func (a *App) Compositor() *Compositor {
	return a.compositor
}

// Loop returns the frame loop.
func (a *App) Loop() *frameloop.Loop {
	return a.loop
}
