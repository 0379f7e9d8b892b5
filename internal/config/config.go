package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"xwinpong/internal/pong"
)

const (
	DefaultPath = "xwinpong.toml"
	DefaultFPS  = 30
)

type Config struct {
	FPS     int    `toml:"fps"`
	Borders bool   `toml:"borders"`
	Display string `toml:"display"`
	Keymap  string `toml:"keymap"`

	Colors  ColorsConfig  `toml:"colors"`
	Tuning  TuningConfig  `toml:"tuning"`
	Logging LoggingConfig `toml:"logging"`
}

// ColorsConfig holds color names or #rgb specs. Empty means the screen's
// default (black paddles, white ball).
type ColorsConfig struct {
	Left  string `toml:"left"`
	Ball  string `toml:"ball"`
	Right string `toml:"right"`
}

type TuningConfig struct {
	HitSpeedup  int  `toml:"hit_speedup"`
	SpinFactor  int  `toml:"spin_factor"`
	SpinLimit   int  `toml:"spin_limit"`
	PaddleAccel int  `toml:"paddle_accel"`
	BallSpeedX  int  `toml:"ball_speed_x"`
	BallSpeedY  int  `toml:"ball_speed_y"`
	WindowSize  int  `toml:"window_size"`
	RandomServe bool `toml:"random_serve"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Defaults() *Config {
	t := pong.DefaultTuning()
	return &Config{
		FPS:     DefaultFPS,
		Borders: true,
		Tuning: TuningConfig{
			HitSpeedup:  t.HitSpeedup,
			SpinFactor:  t.SpinFactor,
			SpinLimit:   t.SpinLimit,
			PaddleAccel: t.PaddleAccel,
			BallSpeedX:  t.BallSpeed.X,
			BallSpeedY:  t.BallSpeed.Y,
			WindowSize:  t.WindowSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load decodes the TOML file at path over the defaults. A missing file is
// only an error when the caller asked for it explicitly.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate replaces unusable values with defaults and describes each
// replacement.
func (c *Config) Validate() []string {
	var warnings []string

	if c.FPS <= 1 {
		warnings = append(warnings, fmt.Sprintf("invalid fps value %d; using the default value (%d)", c.FPS, DefaultFPS))
		c.FPS = DefaultFPS
	}
	if c.Tuning.WindowSize <= 0 {
		def := pong.DefaultTuning().WindowSize
		warnings = append(warnings, fmt.Sprintf("invalid window size %d; using the default value (%d)", c.Tuning.WindowSize, def))
		c.Tuning.WindowSize = def
	}
	if c.Tuning.SpinLimit < 0 {
		warnings = append(warnings, fmt.Sprintf("negative spin limit %d; using its absolute value", c.Tuning.SpinLimit))
		c.Tuning.SpinLimit = -c.Tuning.SpinLimit
	}
	return warnings
}

func (c *Config) PongTuning() pong.Tuning {
	return pong.Tuning{
		HitSpeedup:  c.Tuning.HitSpeedup,
		SpinFactor:  c.Tuning.SpinFactor,
		SpinLimit:   c.Tuning.SpinLimit,
		PaddleAccel: c.Tuning.PaddleAccel,
		BallSpeed:   pong.Vector{X: c.Tuning.BallSpeedX, Y: c.Tuning.BallSpeedY},
		WindowSize:  c.Tuning.WindowSize,
	}
}
