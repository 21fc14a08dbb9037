package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"glscene/internal/texture"

	"github.com/pelletier/go-toml/v2"
)

// Config is the file-backed configuration of the skybox viewer.
type Config struct {
	Assets  Assets  `toml:"assets"`
	Shaders Shaders `toml:"shaders"`
	Skybox  Skybox  `toml:"skybox"`
	Sky     Sky     `toml:"sky"`
	Viewer  Viewer  `toml:"viewer"`
}

// Assets lists directories searched for shader and image files, in order.
// Entries may themselves be list-separated.
type Assets struct {
	SearchPath []string `toml:"search_path"`
}

type Shaders struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
}

// Skybox names the face files ordered +x, -x, +y, -y, +z, -z.
type Skybox struct {
	Day   []string `toml:"day"`
	Night []string `toml:"night"`
}

// Sky holds the day/night blend windows in hours and the per-frame step.
type Sky struct {
	SunriseStart float32 `toml:"sunrise_start"`
	SunriseEnd   float32 `toml:"sunrise_end"`
	SunsetStart  float32 `toml:"sunset_start"`
	SunsetEnd    float32 `toml:"sunset_end"`
	Step         float32 `toml:"step"`
}

// Schedule converts the sky section to a blend schedule.
func (s Sky) Schedule() texture.Schedule {
	return texture.Schedule{
		SunriseStart: s.SunriseStart,
		SunriseEnd:   s.SunriseEnd,
		SunsetStart:  s.SunsetStart,
		SunsetEnd:    s.SunsetEnd,
		Increment:    s.Step,
	}
}

type Viewer struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	FOV      float32 `toml:"fov"`
	FPSLimit int     `toml:"fps_limit"`
	// ClockSpeed is the number of simulated hours per real second.
	ClockSpeed float32 `toml:"clock_speed"`
	StartHour  float32 `toml:"start_hour"`
}

// Default returns the reference configuration.
func Default() Config {
	sched := texture.DefaultSchedule()
	return Config{
		Assets: Assets{SearchPath: []string{"assets", "assets/shaders", "assets/textures"}},
		Shaders: Shaders{
			Vertex:   "skybox.vert",
			Fragment: "skybox.frag",
		},
		Skybox: Skybox{
			Day:   faceNames("day"),
			Night: faceNames("night"),
		},
		Sky: Sky{
			SunriseStart: sched.SunriseStart,
			SunriseEnd:   sched.SunriseEnd,
			SunsetStart:  sched.SunsetStart,
			SunsetEnd:    sched.SunsetEnd,
			Step:         sched.Increment,
		},
		Viewer: Viewer{
			Width:      1280,
			Height:     720,
			FOV:        60,
			FPSLimit:   60,
			ClockSpeed: 0.5,
			StartHour:  5,
		},
	}
}

func faceNames(set string) []string {
	suffixes := []string{"px", "nx", "py", "ny", "pz", "nz"}
	names := make([]string, len(suffixes))
	for i, s := range suffixes {
		names[i] = fmt.Sprintf("%s_%s.png", set, s)
	}
	return names
}

// Load reads a TOML file on top of the defaults. Keys missing from the file
// keep their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg.
func Decode(data []byte, cfg *Config) error {
	err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return errors.New(strict.String())
	}
	return err
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate checks face counts, blend windows and viewer settings.
func (c Config) Validate() error {
	var errs []error
	if n := len(c.Skybox.Day); n != 6 {
		errs = append(errs, fmt.Errorf("skybox.day lists %d faces, want 6", n))
	}
	if n := len(c.Skybox.Night); n != 6 {
		errs = append(errs, fmt.Errorf("skybox.night lists %d faces, want 6", n))
	}
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		errs = append(errs, errors.New("shaders.vertex and shaders.fragment are required"))
	}
	if err := c.Sky.Schedule().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewer size %dx%d is invalid", c.Viewer.Width, c.Viewer.Height))
	}
	if c.Viewer.StartHour < 0 || c.Viewer.StartHour >= 24 {
		errs = append(errs, fmt.Errorf("viewer.start_hour %g outside [0,24)", c.Viewer.StartHour))
	}
	return errors.Join(errs...)
}
