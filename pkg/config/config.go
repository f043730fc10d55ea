// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/opd-ai/go-parabola/pkg/physics"
	"github.com/opd-ai/go-parabola/pkg/render"
)

// Parameter modes
const (
	// ModeLive re-reads speed and angle on every tick.
	ModeLive = "live"
	// ModeSnapshot freezes speed and angle when the kick starts.
	ModeSnapshot = "snapshot"
)

// Renderer names
const (
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
	RendererHeadless = "headless"
)

// Input limits of the speed and angle controls.
const (
	MinSpeed = 0.0
	MaxSpeed = 50.0
	MinAngle = 0.0
	MaxAngle = 90.0
)

// ErrInvalidConfig is returned by Validate for any out-of-range setting.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config contains configuration for the kick simulator
type Config struct {
	InitialSpeed     float64       `json:"initialSpeed"`
	LaunchAngle      float64       `json:"launchAngle"`
	FrameRate        int           `json:"frameRate"`
	ParameterMode    string        `json:"parameterMode"`
	MaxFlightSeconds float64       `json:"maxFlightSeconds"`
	Renderer         string        `json:"renderer"`
	Audio            bool          `json:"audio"`
	LogLevel         string        `json:"logLevel"`
	Layout           render.Layout `json:"layout"`
	Window           WindowConfig  `json:"window"`
}

// WindowConfig contains settings for the engo window
type WindowConfig struct {
	Title      string `json:"title"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen"`
}

// DefaultConfig returns the reference configuration: a 20 m/s kick at 45°.
func DefaultConfig() *Config {
	layout := render.DefaultLayout()
	return &Config{
		InitialSpeed:     20,
		LaunchAngle:      45,
		FrameRate:        60,
		ParameterMode:    ModeLive,
		MaxFlightSeconds: 30,
		Renderer:         RendererTerminal,
		Audio:            false,
		LogLevel:         "INFO",
		Layout:           layout,
		Window: WindowConfig{
			Title:  "Projectile Motion",
			Width:  int(layout.Width),
			Height: int(layout.Height),
		},
	}
}

// LoadConfig loads a configuration from a file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: %w", ErrInvalidConfig)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load builds the effective configuration: defaults, then the JSON file at path
// if it exists, then variables from .env files, then the process environment.
// The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err = LoadConfig(path)
			if err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := LoadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	if err := ApplyEnvironmentOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
// With no arguments it tries ".env" in the working directory.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnvironmentOverrides applies PARABOLA_* variables on top of config.
func ApplyEnvironmentOverrides(config *Config) error {
	var err error
	if config.InitialSpeed, err = getEnvFloat("PARABOLA_SPEED", config.InitialSpeed); err != nil {
		return err
	}
	if config.LaunchAngle, err = getEnvFloat("PARABOLA_ANGLE", config.LaunchAngle); err != nil {
		return err
	}
	if config.FrameRate, err = getEnvInt("PARABOLA_FRAME_RATE", config.FrameRate); err != nil {
		return err
	}
	if config.MaxFlightSeconds, err = getEnvFloat("PARABOLA_MAX_FLIGHT_SECONDS", config.MaxFlightSeconds); err != nil {
		return err
	}
	if config.Audio, err = getEnvBool("PARABOLA_AUDIO", config.Audio); err != nil {
		return err
	}
	config.ParameterMode = getEnv("PARABOLA_PARAMETER_MODE", config.ParameterMode)
	config.Renderer = getEnv("PARABOLA_RENDERER", config.Renderer)
	config.LogLevel = getEnv("PARABOLA_LOG_LEVEL", config.LogLevel)
	return nil
}

// Validate checks every setting is finite and within range. The flight cap
// must exceed the longest flight the controls allow, so a run with fixed
// parameters always lands before it.
func (c *Config) Validate() error {
	l := c.Layout
	for name, v := range map[string]float64{
		"initial speed":      c.InitialSpeed,
		"launch angle":       c.LaunchAngle,
		"max flight seconds": c.MaxFlightSeconds,
		"layout width":       l.Width,
		"layout height":      l.Height,
		"layout scale":       l.Scale,
		"ground offset":      l.GroundOffset,
		"launch x":           l.LaunchX,
		"ball radius":        l.BallRadius,
		"launcher x":         l.LauncherX,
		"launcher width":     l.LauncherWidth,
		"launcher height":    l.LauncherHeight,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidConfig, name)
		}
	}

	if c.InitialSpeed < MinSpeed || c.InitialSpeed > MaxSpeed {
		return fmt.Errorf("%w: initial speed %.2f outside [%.0f, %.0f]", ErrInvalidConfig, c.InitialSpeed, MinSpeed, MaxSpeed)
	}
	if c.LaunchAngle < MinAngle || c.LaunchAngle > MaxAngle {
		return fmt.Errorf("%w: launch angle %.2f outside [%.0f, %.0f]", ErrInvalidConfig, c.LaunchAngle, MinAngle, MaxAngle)
	}
	if c.FrameRate <= 0 || c.FrameRate > 1000 {
		return fmt.Errorf("%w: frame rate %d outside (0, 1000]", ErrInvalidConfig, c.FrameRate)
	}
	if longest := physics.FlightTime(MaxSpeed, MaxAngle); c.MaxFlightSeconds <= longest {
		return fmt.Errorf("%w: max flight seconds %.2f must exceed the longest flight %.2f", ErrInvalidConfig, c.MaxFlightSeconds, longest)
	}
	switch c.ParameterMode {
	case ModeLive, ModeSnapshot:
	default:
		return fmt.Errorf("%w: unknown parameter mode %q", ErrInvalidConfig, c.ParameterMode)
	}
	switch c.Renderer {
	case RendererEngo, RendererTerminal, RendererHeadless:
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidConfig, c.Renderer)
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 || c.Layout.Scale <= 0 {
		return fmt.Errorf("%w: layout dimensions and scale must be positive", ErrInvalidConfig)
	}
	if c.Layout.GroundOffset < 0 || c.Layout.GroundOffset >= c.Layout.Height {
		return fmt.Errorf("%w: ground offset %.0f outside surface height", ErrInvalidConfig, c.Layout.GroundOffset)
	}
	if c.Layout.BallRadius <= 0 {
		return fmt.Errorf("%w: ball radius must be positive", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, value)
	}
	return f, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
	}
	return i, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, value)
	}
	return b, nil
}
