// Package frameloop drives frame-synchronous work in two phases.
//
// Every frame runs all update participants first and then all late
// participants, each in registration order, on a single goroutine. Work that
// must observe settled state, such as the focus plane estimator, belongs in
// the late phase.
package frameloop

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/teslashibe/go-focusplane/internal/log"
)

// Updater is called once per frame with the elapsed seconds since the last frame
type Updater interface {
	Tick(dt float64)
}

// UpdaterFunc adapts a function to Updater.
type UpdaterFunc func(dt float64)

// Tick calls f.
func (f UpdaterFunc) Tick(dt float64) { f(dt) }

// Loop runs registered updaters at a fixed interval
type Loop struct {
	interval time.Duration

	update []Updater
	late   []Updater

	frames  atomic.Uint64
	running atomic.Bool

	now func() time.Time
}

// New creates a loop ticking every interval.
func New(interval time.Duration) *Loop {
	return &Loop{
		interval: interval,
		now:      time.Now,
	}
}

// ForRate creates a loop ticking hz times per second.
func ForRate(hz float64) *Loop {
	return New(time.Duration(float64(time.Second) / hz))
}

// Interval returns the tick interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// OnUpdate registers an update-phase participant. Not safe once Run has started.
func (l *Loop) OnUpdate(u Updater) {
	l.update = append(l.update, u)
}

// OnLate registers a late-phase participant. Not safe once Run has started.
func (l *Loop) OnLate(u Updater) {
	l.late = append(l.late, u)
}

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// IsRunning reports whether Run is active.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Step runs one frame with the given delta time.
func (l *Loop) Step(dt float64) {
	for _, u := range l.update {
		u.Tick(dt)
	}
	for _, u := range l.late {
		u.Tick(dt)
	}
	l.frames.Add(1)
}

// Run steps the loop on every tick with the measured elapsed time
// until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.running.Store(true)
	defer l.running.Store(false)

	log.Info("frame loop started",
		"interval", l.interval,
		"update", len(l.update),
		"late", len(l.late),
	)

	last := l.now()
	for {
		select {
		case <-ctx.Done():
			log.Info("frame loop stopped", "frames", l.Frames())
			return

		case <-ticker.C:
			now := l.now()
			dt := now.Sub(last).Seconds()
			last = now
			l.Step(dt)
		}
	}
}
