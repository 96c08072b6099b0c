package focus

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the TOML keys accepted by LoadConfigFile.
type fileConfig struct {
	Enabled              bool    `toml:"enabled"`
	Mode                 string  `toml:"mode"`
	LerpPowerCloser      float64 `toml:"lerp_power_closer"`
	LerpPowerFarther     float64 `toml:"lerp_power_farther"`
	DefaultPlaneDistance float64 `toml:"default_plane_distance"`
	TrackVelocity        bool    `toml:"track_velocity"`
}

// LoadConfigFile reads a TOML config file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfigFile(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load focus config: %w", err)
	}
	return overlayConfig(meta, raw)
}

// ParseConfig decodes TOML text the same way LoadConfigFile does.
func ParseConfig(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse focus config: %w", err)
	}
	return overlayConfig(meta, raw)
}

func overlayConfig(meta toml.MetaData, raw fileConfig) (Config, error) {
	cfg := DefaultConfig()

	if meta.IsDefined("enabled") {
		cfg.Enabled = raw.Enabled
	}

	if meta.IsDefined("mode") {
		mode, err := ParseMode(strings.TrimSpace(raw.Mode))
		if err != nil {
			return Config{}, fmt.Errorf("parse mode: %w", err)
		}
		cfg.Mode = mode
	}

	if meta.IsDefined("lerp_power_closer") {
		cfg.LerpPowerCloser = raw.LerpPowerCloser
	}

	if meta.IsDefined("lerp_power_farther") {
		cfg.LerpPowerFarther = raw.LerpPowerFarther
	}

	if meta.IsDefined("default_plane_distance") {
		cfg.DefaultPlaneDistance = raw.DefaultPlaneDistance
	}

	if meta.IsDefined("track_velocity") {
		cfg.TrackVelocity = raw.TrackVelocity
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
