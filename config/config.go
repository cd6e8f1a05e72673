// Package config loads the demo settings from defaults, an optional config
// file, SIERPINSKI_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SIERPINSKI_DEPTH=4.
const EnvPrefix = "SIERPINSKI"

// maxDepth mirrors geom.MaxDepth; deeper subdivision exhausts memory.
const maxDepth = 6

type Config struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`

	VertexShader   string `mapstructure:"vertex-shader"`
	FragmentShader string `mapstructure:"fragment-shader"`
	Texture        string `mapstructure:"texture"`
	TextureSize    int    `mapstructure:"texture-size"`

	Seed           uint64 `mapstructure:"seed"`
	Depth          int    `mapstructure:"depth"`
	Capacity       int    `mapstructure:"capacity"`
	SpawnIncrement int    `mapstructure:"spawn-increment"`
	BurstPairs     int    `mapstructure:"burst-pairs"`

	FOV         float32 `mapstructure:"fov"`
	Near        float32 `mapstructure:"near"`
	Far         float32 `mapstructure:"far"`
	Sensitivity float32 `mapstructure:"sensitivity"`
	MoveSpeed   float32 `mapstructure:"move-speed"`

	ZoomSteps        int     `mapstructure:"zoom-steps"`
	ZoomStep         float32 `mapstructure:"zoom-step"`
	ZoomStepsPerTick int     `mapstructure:"zoom-steps-per-tick"`

	TickRate   int    `mapstructure:"tick-rate"`
	LogLevel   string `mapstructure:"log-level"`
	CPUProfile string `mapstructure:"cpuprofile"`
}

// Default returns the baked-in settings.
func Default() *Config {
	return &Config{
		Width:  800,
		Height: 600,
		Title:  "Sierpinski",

		VertexShader:   "shaders/scene.vert",
		FragmentShader: "shaders/scene.frag",
		Texture:        "textures/crate.png",
		TextureSize:    256,

		Seed:           0, // 0 picks a random seed
		Depth:          3,
		Capacity:       2000,
		SpawnIncrement: 10,
		BurstPairs:     200,

		FOV:         70,
		Near:        0.1,
		Far:         200,
		Sensitivity: 0.002,
		MoveSpeed:   0.5,

		ZoomSteps:        1000,
		ZoomStep:         0.02,
		ZoomStepsPerTick: 20,

		TickRate: 60,
		LogLevel: "info",
	}
}

// Flags declares one flag per setting with the defaults as values.
func Flags() *pflag.FlagSet {
	d := Default()
	flags := pflag.NewFlagSet("sierpinski", pflag.ContinueOnError)

	flags.String("config", "", "config file (yaml, toml or json)")

	flags.Int("width", d.Width, "window width")
	flags.Int("height", d.Height, "window height")
	flags.String("title", d.Title, "window title")

	flags.String("vertex-shader", d.VertexShader, "vertex shader source")
	flags.String("fragment-shader", d.FragmentShader, "fragment shader source")
	flags.String("texture", d.Texture, "texture for textured cubes")
	flags.Int("texture-size", d.TextureSize, "texture edge after rescaling, 0 keeps the original size")

	flags.Uint64("seed", d.Seed, "random seed, 0 for a random one")
	flags.Int("depth", d.Depth, "sierpinski subdivision depth")
	flags.Int("capacity", d.Capacity, "live-object cap")
	flags.Int("spawn-increment", d.SpawnIncrement, "objects queued per spawn command")
	flags.Int("burst-pairs", d.BurstPairs, "cube and sierpinski pairs added by a burst")

	flags.Float32("fov", d.FOV, "vertical field of view in degrees")
	flags.Float32("near", d.Near, "near plane")
	flags.Float32("far", d.Far, "far plane")
	flags.Float32("sensitivity", d.Sensitivity, "mouse sensitivity in radians per pixel")
	flags.Float32("move-speed", d.MoveSpeed, "distance per move command")

	flags.Int("zoom-steps", d.ZoomSteps, "steps per zoom command")
	flags.Float32("zoom-step", d.ZoomStep, "distance per zoom step")
	flags.Int("zoom-steps-per-tick", d.ZoomStepsPerTick, "zoom steps applied per update")

	flags.Int("tick-rate", d.TickRate, "updates per second")
	flags.String("log-level", d.LogLevel, "debug, info, warn or error")
	flags.String("cpuprofile", d.CPUProfile, "write cpu profile to file")

	return flags
}

// Load parses args and merges every configuration source.
func Load(args []string) (*Config, error) {
	flags := Flags()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %q: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot run with.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", cfg.Width, cfg.Height))
	}
	if cfg.Depth < 0 || cfg.Depth > maxDepth {
		errs = append(errs, fmt.Errorf("depth %d outside [0, %d]", cfg.Depth, maxDepth))
	}
	if cfg.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity %d must be positive", cfg.Capacity))
	}
	if cfg.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate %d must be positive", cfg.TickRate))
	}
	if cfg.Near <= 0 || cfg.Far <= cfg.Near {
		errs = append(errs, fmt.Errorf("clip planes near=%v far=%v", cfg.Near, cfg.Far))
	}
	if cfg.FOV <= 0 || cfg.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v outside (0, 180)", cfg.FOV))
	}
	if cfg.SpawnIncrement < 0 || cfg.BurstPairs < 0 || cfg.TextureSize < 0 {
		errs = append(errs, errors.New("spawn-increment, burst-pairs and texture-size must not be negative"))
	}
	if _, err := cfg.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel.
func (cfg *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	return level, nil
}
