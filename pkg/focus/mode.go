package focus

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode identifies the strategy used to place the plane.
// Modes are ordered by priority, highest first.
type Mode int

const (
	// ModeOverrideTarget places the plane on an explicit target.
	ModeOverrideTarget Mode = iota
	// ModeGazeTarget eases the plane toward the gaze hit distance.
	ModeGazeTarget
	// ModeFixedDistance eases the plane toward DefaultPlaneDistance.
	ModeFixedDistance
)

// String returns the short name used in config files and the tuning API.
func (m Mode) String() string {
	switch m {
	case ModeOverrideTarget:
		return "override"
	case ModeGazeTarget:
		return "gaze"
	case ModeFixedDistance:
		return "fixed"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Both the short ("gaze") and long
// ("gaze_target") spellings are accepted, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "override", "override_target", "overridetarget":
		return ModeOverrideTarget, nil
	case "gaze", "gaze_target", "gazetarget":
		return ModeGazeTarget, nil
	case "fixed", "fixed_distance", "fixeddistance":
		return ModeFixedDistance, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Target is the strategy chosen for one frame together with the data it needs.
type Target struct {
	Kind Mode

	// Position is the override position (ModeOverrideTarget) or the gaze
	// hit point (ModeGazeTarget). Unused for ModeFixedDistance.
	Position r3.Vec

	// Distance is the raw distance the smoothed plane distance eases toward.
	// Unused for ModeOverrideTarget.
	Distance float64
}

// SelectTarget walks the priority chain starting at cfg.Mode and returns the
// first strategy whose input is present this frame.
func SelectTarget(in FrameInputs, cfg Config) Target {
	switch cfg.Mode {
	case ModeOverrideTarget:
		if in.Override != nil {
			return Target{Kind: ModeOverrideTarget, Position: *in.Override}
		}
		fallthrough
	case ModeGazeTarget:
		if in.Gaze != nil {
			return Target{
				Kind:     ModeGazeTarget,
				Position: in.Gaze.Point,
				Distance: r3.Norm(r3.Sub(in.Gaze.Point, in.CameraPosition)),
			}
		}
	}
	return Target{Kind: ModeFixedDistance, Distance: cfg.DefaultPlaneDistance}
}
