package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Editor  EditorConfig  `yaml:"editor"`
	Effects EffectsConfig `yaml:"effects"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
}

// WindowConfig contains window and frame pacing settings
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FrameRate int    `yaml:"framerate"`
	VSync     bool   `yaml:"vsync"`
	Title     string `yaml:"title"`
}

// EditorConfig contains text rendering settings
type EditorConfig struct {
	Font       string `yaml:"font"` // regular, bold, mono, monobold
	FontSize   int    `yaml:"font_size"`
	Background string `yaml:"background"` // optional image path
}

// EffectsConfig contains the initial effect set and per-effect parameters
type EffectsConfig struct {
	Active   []string `yaml:"active"`
	CanShake bool     `yaml:"can_shake"`
	Seed     int64    `yaml:"seed"` // 0 means random

	Particles ParticleConfig  `yaml:"particles"`
	Gradient  GradientConfig  `yaml:"gradient"`
	Blur      BlurConfig      `yaml:"blur"`
	Glitch    GlitchConfig    `yaml:"glitch"`
	Chromatic ChromaticConfig `yaml:"chromatic"`
	Scanlines ScanlineConfig  `yaml:"scanlines"`
	Wave      WaveConfig      `yaml:"wave"`
	Noise     NoiseConfig     `yaml:"noise"`
	Shake     ShakeConfig     `yaml:"shake"`
	Rotate    RotateConfig    `yaml:"rotate"`
}

// ParticleConfig tunes the glowing particle emitter
type ParticleConfig struct {
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
	Margin          float64 `yaml:"margin"`
	MinSize         int     `yaml:"min_size"`
	MaxSize         int     `yaml:"max_size"`
	MinLifespan     float64 `yaml:"min_lifespan"`
	MaxLifespan     float64 `yaml:"max_lifespan"`
	SizeDecay       float64 `yaml:"size_decay"`
	Gravity         float64 `yaml:"gravity"`
	GlowAlpha       uint8   `yaml:"glow_alpha"`
}

// GradientConfig tunes the animated color wash
type GradientConfig struct {
	Frames     int     `yaml:"frames"` // 0 means one second of frames
	FrameDelay int     `yaml:"frame_delay"`
	Brightness float64 `yaml:"brightness"`
	Amplitude  float64 `yaml:"amplitude"`
	Alpha      uint8   `yaml:"alpha"`
}

// BlurConfig tunes the ghost blur
type BlurConfig struct {
	Passes int   `yaml:"passes"`
	Offset int   `yaml:"offset"`
	Alpha  uint8 `yaml:"alpha"`
}

// GlitchConfig tunes horizontal tearing
type GlitchConfig struct {
	Bands         int `yaml:"bands"`
	MaxBandHeight int `yaml:"max_band_height"`
	MaxShift      int `yaml:"max_shift"`
}

// ChromaticConfig tunes the red/blue channel split
type ChromaticConfig struct {
	Shift int `yaml:"shift"`
}

// ScanlineConfig tunes the CRT lines
type ScanlineConfig struct {
	Spacing int   `yaml:"spacing"`
	Alpha   uint8 `yaml:"alpha"`
}

// WaveConfig tunes the row ripple
type WaveConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	PhaseStep float64 `yaml:"phase_step"`
}

// NoiseConfig tunes the film grain overlay
type NoiseConfig struct {
	TileSize    int   `yaml:"tile_size"`
	Intensity   int   `yaml:"intensity"`
	UpdateEvery int   `yaml:"update_every"`
	Alpha       uint8 `yaml:"alpha"`
}

// ShakeConfig tunes the screen shake envelope
type ShakeConfig struct {
	DurationFrames int `yaml:"duration_frames"`
	Amplitude      int `yaml:"amplitude"`
}

// RotateConfig tunes per-glyph rotation
type RotateConfig struct {
	StepDegrees float64 `yaml:"step_degrees"`
}

// AudioConfig contains audio-related configuration
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional; mirrors console output
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1200,
			Height:    800,
			FrameRate: 60,
			VSync:     true,
			Title:     "GlitchPad",
		},
		Editor: EditorConfig{
			Font:     "bold",
			FontSize: 36,
		},
		Effects: DefaultEffectsConfig(),
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultEffectsConfig returns the stock effect tuning with no effect active.
func DefaultEffectsConfig() EffectsConfig {
	return EffectsConfig{
		Active: []string{},
		Particles: ParticleConfig{
			SpawnIntervalMs: 50,
			Margin:          20,
			MinSize:         4,
			MaxSize:         15,
			MinLifespan:     1.0,
			MaxLifespan:     3.0,
			SizeDecay:       0.1,
			Gravity:         0.01,
			GlowAlpha:       100,
		},
		Gradient: GradientConfig{
			Frames:     0,
			FrameDelay: 0,
			Brightness: 80,
			Amplitude:  80,
			Alpha:      60,
		},
		Blur:      BlurConfig{Passes: 2, Offset: 3, Alpha: 30},
		Glitch:    GlitchConfig{Bands: 5, MaxBandHeight: 5, MaxShift: 20},
		Chromatic: ChromaticConfig{Shift: 5},
		Scanlines: ScanlineConfig{Spacing: 2, Alpha: 40},
		Wave:      WaveConfig{Amplitude: 5, Frequency: 0.05, PhaseStep: 0.1},
		Noise:     NoiseConfig{TileSize: 128, Intensity: 100, UpdateEvery: 1, Alpha: 20},
		Shake:     ShakeConfig{DurationFrames: 60, Amplitude: 15},
		Rotate:    RotateConfig{StepDegrees: 1},
	}
}

// Validate rejects settings the renderer cannot work with and fills in
// derived defaults.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FrameRate <= 0 {
		return fmt.Errorf("invalid framerate %d", c.Window.FrameRate)
	}
	if c.Editor.FontSize < 1 {
		return fmt.Errorf("invalid font size %d", c.Editor.FontSize)
	}
	e := &c.Effects
	if e.Gradient.Frames <= 0 {
		e.Gradient.Frames = c.Window.FrameRate
	}
	if e.Particles.SpawnIntervalMs < 0 {
		return fmt.Errorf("invalid particle spawn interval %dms", e.Particles.SpawnIntervalMs)
	}
	if e.Particles.MinSize > e.Particles.MaxSize {
		return fmt.Errorf("particle min_size %d exceeds max_size %d", e.Particles.MinSize, e.Particles.MaxSize)
	}
	if e.Noise.TileSize <= 0 {
		e.Noise.TileSize = 128
	}
	if e.Noise.UpdateEvery <= 0 {
		e.Noise.UpdateEvery = 1
	}
	if e.Noise.Intensity < 1 {
		e.Noise.Intensity = 1
	}
	if e.Scanlines.Spacing <= 0 {
		e.Scanlines.Spacing = 2
	}
	if e.Shake.DurationFrames <= 0 {
		return fmt.Errorf("invalid shake duration %d", e.Shake.DurationFrames)
	}
	return nil
}

// LoadConfig loads the configuration from a file. On failure the returned
// config holds the defaults, so callers may continue with a warning.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", filePath, err)
	}

	return config, nil
}

// IsNotFound reports whether a LoadConfig error only means the file is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
