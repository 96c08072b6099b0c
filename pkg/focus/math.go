package focus

// Lerp performs linear interpolation between a and b.
// t is clamped to [0, 1], so values above 1 return b.
func Lerp(a, b, t float64) float64 {
	t = clamp(t, 0, 1)
	return a + t*(b-a)
}

// SmoothDistance advances a smoothed distance one frame toward target.
// The farther rate applies only when target is strictly beyond current.
func SmoothDistance(current, target, closer, farther, dt float64) float64 {
	return Lerp(current, target, lerpPower(current, target, closer, farther)*dt)
}

// lerpPower picks the smoothing rate. Equal distances use the closer rate.
func lerpPower(current, target, closer, farther float64) float64 {
	if target > current {
		return farther
	}
	return closer
}

// clamp limits a value to a range
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
