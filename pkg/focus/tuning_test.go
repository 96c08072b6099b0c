package focus

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestStore_TuningReflectsConfig(t *testing.T) {
	s := NewStore(DefaultConfig())

	p := s.Tuning()
	require.NotNil(t, p.Enabled)
	require.NotNil(t, p.TrackVelocity)
	assert.True(t, *p.Enabled)
	assert.False(t, *p.TrackVelocity)
	assert.Equal(t, "override", p.Mode)
	assert.Equal(t, DefaultLerpPowerCloser, p.LerpPowerCloser)
	assert.Equal(t, DefaultLerpPowerFarther, p.LerpPowerFarther)
	assert.Equal(t, DefaultPlaneDistance, p.DefaultPlaneDistance)
}

func TestStore_SetTuningAppliesOnlySetValues(t *testing.T) {
	s := NewStore(DefaultConfig())

	err := s.SetTuning(TuningParams{
		Mode:             "fixed",
		LerpPowerFarther: 12,
		TrackVelocity:    boolPtr(true),
	})
	require.NoError(t, err)

	cfg := s.Snapshot()
	assert.True(t, cfg.Enabled, "unset bool kept")
	assert.Equal(t, ModeFixedDistance, cfg.Mode)
	assert.Equal(t, DefaultLerpPowerCloser, cfg.LerpPowerCloser, "zero number kept")
	assert.Equal(t, 12.0, cfg.LerpPowerFarther)
	assert.True(t, cfg.TrackVelocity)

	require.NoError(t, s.SetTuning(TuningParams{Enabled: boolPtr(false), LerpPowerCloser: -3}))
	cfg = s.Snapshot()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, DefaultLerpPowerCloser, cfg.LerpPowerCloser, "negative number ignored")
}

func TestStore_SetTuningBadModeAppliesNothing(t *testing.T) {
	s := NewStore(DefaultConfig())

	err := s.SetTuning(TuningParams{Mode: "sideways", LerpPowerCloser: 9})
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, DefaultConfig(), s.Snapshot())
}

func TestTuningParams_JSON(t *testing.T) {
	var p TuningParams
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"gaze","lerp_power_closer":3,"enabled":false}`), &p))

	assert.Equal(t, "gaze", p.Mode)
	assert.Equal(t, 3.0, p.LerpPowerCloser)
	require.NotNil(t, p.Enabled)
	assert.False(t, *p.Enabled)
	assert.Nil(t, p.TrackVelocity)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.SetTuning(TuningParams{LerpPowerCloser: float64(i + 1)})
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	got := s.Snapshot().LerpPowerCloser
	assert.True(t, got >= 1 && got <= 8, "closer = %v", got)
}
