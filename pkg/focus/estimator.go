package focus

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/teslashibe/go-focusplane/internal/log"
	"github.com/teslashibe/go-focusplane/pkg/debug"
)

// Estimator computes the stabilization plane once per frame
type Estimator struct {
	hinter    FrameHinter
	observers []PlaneObserver
	logger    *slog.Logger

	// Providers used by Step and Tick
	camera   CameraPoseProvider
	gaze     GazeProvider
	override OverrideProvider
	config   ConfigSource

	// Settings
	initialDistance float64
	frameRate       float64

	// State
	state    SmoothingState
	lastMode Mode
	hasMode  bool
	frames   uint64
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithLogger sets the logger used for mode changes and frame traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Estimator) { e.logger = l }
}

// WithInitialDistance sets the smoothed plane distance at start and after Reset.
func WithInitialDistance(d float64) Option {
	return func(e *Estimator) { e.initialDistance = d }
}

// WithNominalFrameRate replaces the 60 Hz rate used for override velocity.
func WithNominalFrameRate(hz float64) Option {
	return func(e *Estimator) {
		if hz > 0 {
			e.frameRate = hz
		}
	}
}

// WithObserver adds an observer that sees every emitted plane.
func WithObserver(o PlaneObserver) Option {
	return func(e *Estimator) { e.observers = append(e.observers, o) }
}

// WithCamera sets the camera pose provider read by Step.
func WithCamera(p CameraPoseProvider) Option {
	return func(e *Estimator) { e.camera = p }
}

// WithGaze sets the gaze provider read by Step.
func WithGaze(p GazeProvider) Option {
	return func(e *Estimator) { e.gaze = p }
}

// WithOverride sets the override target provider read by Step.
func WithOverride(p OverrideProvider) Option {
	return func(e *Estimator) { e.override = p }
}

// WithConfigSource sets where Tick reads its per-frame Config.
func WithConfigSource(s ConfigSource) Option {
	return func(e *Estimator) { e.config = s }
}

// New creates an estimator that emits to hinter.
func New(hinter FrameHinter, opts ...Option) *Estimator {
	e := &Estimator{
		hinter:          hinter,
		initialDistance: DefaultInitialPlaneDistance,
		frameRate:       NominalFrameRate,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.With("component", "focus")
	}
	e.state.PlaneDistance = e.initialDistance
	return e
}

// State returns a copy of the smoothing state.
func (e *Estimator) State() SmoothingState {
	return e.state
}

// Frames returns how many planes have been emitted.
func (e *Estimator) Frames() uint64 {
	return e.frames
}

// Reset restores the initial smoothing state.
func (e *Estimator) Reset() {
	e.state = SmoothingState{PlaneDistance: e.initialDistance}
	e.hasMode = false
}

// Advance computes the plane for one frame and forwards it to the hinter.
// It returns false, without touching any state, when cfg.Enabled is false.
//
// The camera forward vector must be non-zero; callers guarantee a camera exists.
func (e *Estimator) Advance(in FrameInputs, cfg Config) (PlaneResult, bool) {
	if !cfg.Enabled {
		return PlaneResult{}, false
	}

	forward := r3.Unit(in.CameraForward)
	target := SelectTarget(in, cfg)

	res := PlaneResult{
		Mode:   target.Kind,
		Normal: r3.Scale(-1, forward),
	}

	switch target.Kind {
	case ModeOverrideTarget:
		// Placed exactly, no smoothing
		res.Position = target.Position
		res.Distance = r3.Norm(r3.Sub(target.Position, in.CameraPosition))
		if cfg.TrackVelocity {
			res.Velocity = r3.Scale(e.frameRate, r3.Sub(target.Position, e.state.PreviousTarget))
			e.state.PreviousTarget = target.Position
		}

	default:
		e.state.PlaneDistance = SmoothDistance(
			e.state.PlaneDistance,
			target.Distance,
			cfg.LerpPowerCloser,
			cfg.LerpPowerFarther,
			in.DeltaTime,
		)
		res.Position = r3.Add(in.CameraPosition, r3.Scale(e.state.PlaneDistance, forward))
		res.Distance = e.state.PlaneDistance
	}

	e.noteMode(target.Kind)
	e.frames++

	if e.hinter != nil {
		e.hinter.SetFocusPointForFrame(res.Position, res.Normal, res.Velocity)
	}
	for _, o := range e.observers {
		o.ObservePlane(e.frames, res)
	}

	debug.PlaneLog("focus plane",
		"mode", res.Mode.String(),
		"distance", res.Distance,
		"x", res.Position.X, "y", res.Position.Y, "z", res.Position.Z,
	)

	return res, true
}

// Step gathers this frame's inputs from the providers and calls Advance.
// A frame without a camera pose is skipped.
func (e *Estimator) Step(dt float64, cfg Config) (PlaneResult, bool) {
	if !cfg.Enabled {
		return PlaneResult{}, false
	}

	in, ok := e.gather(dt)
	if !ok {
		e.logger.Debug("no camera pose, skipping frame")
		return PlaneResult{}, false
	}
	return e.Advance(in, cfg)
}

// Tick runs Step with the configured ConfigSource, or DefaultConfig when
// none was given. It lets the estimator sit in a frame loop's late phase.
func (e *Estimator) Tick(dt float64) {
	cfg := DefaultConfig()
	if e.config != nil {
		cfg = e.config.Snapshot()
	}
	e.Step(dt, cfg)
}

func (e *Estimator) gather(dt float64) (FrameInputs, bool) {
	if e.camera == nil {
		return FrameInputs{}, false
	}
	pose, ok := e.camera.CameraPose()
	if !ok {
		return FrameInputs{}, false
	}

	in := FrameInputs{
		CameraPosition: pose.Position,
		CameraForward:  pose.Forward,
		DeltaTime:      dt,
	}
	if e.override != nil {
		if p, ok := e.override.OverrideTarget(); ok {
			in.Override = &p
		}
	}
	if e.gaze != nil {
		if hit, ok := e.gaze.GazeHit(); ok {
			in.Gaze = &hit
		}
	}
	return in, true
}

// noteMode logs when the selected strategy changes between frames
func (e *Estimator) noteMode(m Mode) {
	if e.hasMode && e.lastMode == m {
		return
	}
	if e.hasMode {
		e.logger.Info("focus mode changed", "from", e.lastMode.String(), "to", m.String())
	} else {
		e.logger.Info("focus mode selected", "mode", m.String())
	}
	e.lastMode = m
	e.hasMode = true
}
