// Package focus estimates the per-frame stabilization plane for a holographic display.
//
// Each frame the estimator picks one of three strategies and emits a plane
// position, a normal facing the viewer and an optional velocity to a FrameHinter:
//
//   - Override target: the plane sits exactly on a caller supplied point.
//   - Gaze target: the plane distance eases toward the gaze hit distance.
//   - Fixed distance: the plane distance eases toward DefaultPlaneDistance.
//
// Selection starts at Config.Mode and falls back down that list when the
// required input is missing for the frame.
//
// # Usage
//
//	est := focus.New(compositor,
//	    focus.WithCamera(camera),
//	    focus.WithGaze(gaze),
//	)
//	loop.OnLate(est)
//
// The estimator is not safe for concurrent use. It is meant to be driven from
// the late phase of a single frame loop; configuration that is edited from
// other goroutines goes through a Store.
package focus
