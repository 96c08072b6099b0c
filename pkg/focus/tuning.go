package focus

import (
	"fmt"
	"sync"
)

// Store holds the live Config shared between the frame loop and the
// diagnostics API. The loop reads one snapshot per frame.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore creates a store holding cfg.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot returns a copy of the current config.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies fn to the config under the write lock.
func (s *Store) Update(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
}

// TuningParams holds the real-time adjustable estimator parameters.
// These can be modified via the tuning API without restarting.
type TuningParams struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Mode    string `json:"mode,omitempty"` // override, gaze, fixed

	// Smoothing
	LerpPowerCloser  float64 `json:"lerp_power_closer,omitempty"`
	LerpPowerFarther float64 `json:"lerp_power_farther,omitempty"`

	DefaultPlaneDistance float64 `json:"default_plane_distance,omitempty"`
	TrackVelocity        *bool   `json:"track_velocity,omitempty"`
}

// Tuning returns the current parameters.
func (s *Store) Tuning() TuningParams {
	cfg := s.Snapshot()
	enabled, track := cfg.Enabled, cfg.TrackVelocity

	return TuningParams{
		Enabled:              &enabled,
		Mode:                 cfg.Mode.String(),
		LerpPowerCloser:      cfg.LerpPowerCloser,
		LerpPowerFarther:     cfg.LerpPowerFarther,
		DefaultPlaneDistance: cfg.DefaultPlaneDistance,
		TrackVelocity:        &track,
	}
}

// SetTuning updates parameters at runtime.
// Only positive numbers, set booleans and a non-empty mode are applied.
// Nothing is applied if the mode does not parse.
func (s *Store) SetTuning(p TuningParams) error {
	var (
		mode    Mode
		hasMode bool
	)
	if p.Mode != "" {
		m, err := ParseMode(p.Mode)
		if err != nil {
			return fmt.Errorf("set tuning: %w", err)
		}
		mode, hasMode = m, true
	}

	s.Update(func(cfg *Config) {
		if p.Enabled != nil {
			cfg.Enabled = *p.Enabled
		}
		if hasMode {
			cfg.Mode = mode
		}
		if p.LerpPowerCloser > 0 {
			cfg.LerpPowerCloser = p.LerpPowerCloser
		}
		if p.LerpPowerFarther > 0 {
			cfg.LerpPowerFarther = p.LerpPowerFarther
		}
		if p.DefaultPlaneDistance > 0 {
			cfg.DefaultPlaneDistance = p.DefaultPlaneDistance
		}
		if p.TrackVelocity != nil {
			cfg.TrackVelocity = *p.TrackVelocity
		}
	})
	return nil
}
