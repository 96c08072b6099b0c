package focus

import "gonum.org/v1/gonum/spatial/r3"

// Pose is a camera position and viewing direction in world space.
type Pose struct {
	Position r3.Vec
	Forward  r3.Vec
}

// GazeHit is where the gaze ray met scene geometry this frame.
type GazeHit struct {
	Point    r3.Vec  // World-space hit point
	Distance float64 // Distance along the gaze ray, as reported by the hit test
}

// FrameInputs are the external values the estimator reads each frame.
type FrameInputs struct {
	CameraPosition r3.Vec
	CameraForward  r3.Vec // Normalized before use

	Override  *r3.Vec  // nil when no override target exists
	Gaze      *GazeHit // nil when no gaze data is available
	DeltaTime float64  // Seconds since the previous frame
}

// SmoothingState is the estimator state carried across frames.
type SmoothingState struct {
	PlaneDistance  float64 // Last smoothed distance along the view direction
	PreviousTarget r3.Vec  // Override position seen on the previous tracked frame
}

// PlaneResult is the plane emitted for one frame.
type PlaneResult struct {
	Position r3.Vec
	Normal   r3.Vec // Unit length, points back toward the viewer
	Velocity r3.Vec // Zero unless tracking override velocity

	Mode     Mode    // Strategy that produced the plane
	Distance float64 // Distance from the camera to Position
}

// FrameHinter receives the focus point for the current frame.
// It is the hand-off to the display compositor.
type FrameHinter interface {
	SetFocusPointForFrame(position, normal, velocity r3.Vec)
}

// FrameHinterFunc adapts a function to FrameHinter.
type FrameHinterFunc func(position, normal, velocity r3.Vec)

// SetFocusPointForFrame calls f.
func (f FrameHinterFunc) SetFocusPointForFrame(position, normal, velocity r3.Vec) {
	f(position, normal, velocity)
}

// MultiHinter forwards each focus point to every hinter in order.
type MultiHinter []FrameHinter

// SetFocusPointForFrame forwards to every non-nil hinter.
func (m MultiHinter) SetFocusPointForFrame(position, normal, velocity r3.Vec) {
	for _, h := range m {
		if h != nil {
			h.SetFocusPointForFrame(position, normal, velocity)
		}
	}
}

// PlaneObserver is told about every emitted plane, after the FrameHinter.
// frame counts emitted planes starting at 1.
type PlaneObserver interface {
	ObservePlane(frame uint64, res PlaneResult)
}

// CameraPoseProvider supplies the camera pose for the current frame.
type CameraPoseProvider interface {
	CameraPose() (Pose, bool)
}

// GazeProvider supplies the gaze hit for the current frame, if any.
type GazeProvider interface {
	GazeHit() (GazeHit, bool)
}

// OverrideProvider supplies the override target position, if any.
type OverrideProvider interface {
	OverrideTarget() (r3.Vec, bool)
}

// ConfigSource supplies the configuration for the current frame.
type ConfigSource interface {
	Snapshot() Config
}
