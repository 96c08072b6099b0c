package focus

import "fmt"

// Default tuning values.
const (
	DefaultLerpPowerCloser      = 4.0
	DefaultLerpPowerFarther     = 7.0
	DefaultPlaneDistance        = 2.0
	DefaultInitialPlaneDistance = 4.0

	// NominalFrameRate is the frame rate assumed when converting an override
	// target's per-frame displacement into a velocity. The real frame delta
	// is not used.
	NominalFrameRate = 60.0
)

// Config holds the per-frame options of the estimator
type Config struct {
	// Enabled turns the estimator on. When false nothing is computed or emitted.
	Enabled bool

	// Mode is the preferred strategy. Lower priority strategies are used
	// when its input is missing.
	Mode Mode

	// Smoothing rates (per second). Farther is used when the target
	// distance is strictly greater than the current plane distance.
	LerpPowerCloser  float64
	LerpPowerFarther float64

	// DefaultPlaneDistance is the target distance of ModeFixedDistance.
	DefaultPlaneDistance float64

	// TrackVelocity reports override target velocity. Ignored in other modes.
	TrackVelocity bool
}

// DefaultConfig returns the recommended configuration
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		Mode:                 ModeOverrideTarget,
		LerpPowerCloser:      DefaultLerpPowerCloser,
		LerpPowerFarther:     DefaultLerpPowerFarther,
		DefaultPlaneDistance: DefaultPlaneDistance,
	}
}

// Validate checks that the smoothing parameters are usable.
func (c Config) Validate() error {
	if c.Mode < ModeOverrideTarget || c.Mode > ModeFixedDistance {
		return fmt.Errorf("%w: mode %v", ErrInvalidConfig, c.Mode)
	}
	if c.LerpPowerCloser < 0 {
		return fmt.Errorf("%w: lerp_power_closer %v is negative", ErrInvalidConfig, c.LerpPowerCloser)
	}
	if c.LerpPowerFarther < 0 {
		return fmt.Errorf("%w: lerp_power_farther %v is negative", ErrInvalidConfig, c.LerpPowerFarther)
	}
	if c.DefaultPlaneDistance <= 0 {
		return fmt.Errorf("%w: default_plane_distance %v must be positive", ErrInvalidConfig, c.DefaultPlaneDistance)
	}
	return nil
}
