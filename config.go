package volview

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window struct {
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
		Title  string `yaml:"title"`
	} `yaml:"window"`

	Dataset struct {
		// Path to the headerless raw volume file
		Path string `yaml:"path"`

		// Grid dimensions; the file's byte count must match exactly
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
		Depth  int `yaml:"depth"`

		// Element format: "uint8" or "float32"
		Format string `yaml:"format"`

		// Rescale float32 intensities to observed [0,1] before upload
		Normalize bool `yaml:"normalize"`
	} `yaml:"dataset"`

	Render struct {
		// Number of compositing slices, minimum 2
		Slices int `yaml:"slices"`

		// Alpha applied per sampled intensity
		AlphaScale float32 `yaml:"alphaScale"`

		// Fragments below this alpha are discarded instead of blended
		DiscardThreshold float32 `yaml:"discardThreshold"`

		TargetFPS int `yaml:"targetFPS"`
	} `yaml:"render"`

	Camera struct {
		RotateSensitivity float32 `yaml:"rotateSensitivity"`
		ZoomSensitivity   float32 `yaml:"zoomSensitivity"`
		ZoomMin           float32 `yaml:"zoomMin"`
		ZoomMax           float32 `yaml:"zoomMax"`
		InitialZoom       float32 `yaml:"initialZoom"`
	} `yaml:"camera"`

	Export struct {
		// Directory for slice PNG exports
		Dir string `yaml:"dir"`

		// Longer-edge size of exported previews; 0 keeps native resolution
		PreviewSize int `yaml:"previewSize"`
	} `yaml:"export"`
}

// DefaultConfig returns a configuration matching the reference dataset.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Window.Width = 1280
	cfg.Window.Height = 720
	cfg.Window.Title = "3D Volume Viewer"

	cfg.Dataset.Path = "engine_256x256x128_uint8.raw"
	cfg.Dataset.Width = 256
	cfg.Dataset.Height = 256
	cfg.Dataset.Depth = 128
	cfg.Dataset.Format = "uint8"

	cfg.Render.Slices = 128
	cfg.Render.AlphaScale = 0.4
	cfg.Render.DiscardThreshold = 0.01
	cfg.Render.TargetFPS = 60

	cfg.Camera.RotateSensitivity = 0.005
	cfg.Camera.ZoomSensitivity = 0.1
	cfg.Camera.ZoomMin = 0.5
	cfg.Camera.ZoomMax = 5.0
	cfg.Camera.InitialZoom = 3.75

	cfg.Export.Dir = "slices_out"
	cfg.Export.PreviewSize = 256

	return cfg
}

// LoadConfig loads configuration from a YAML file laid over the defaults.
// A nonexistent path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Dataset.Width <= 0 || cfg.Dataset.Height <= 0 || cfg.Dataset.Depth <= 0 {
		return fmt.Errorf("dataset dimensions must be positive, got %dx%dx%d",
			cfg.Dataset.Width, cfg.Dataset.Height, cfg.Dataset.Depth)
	}
	if _, err := ParseVolumeFormat(cfg.Dataset.Format); err != nil {
		return err
	}
	if cfg.Render.Slices < 2 {
		return fmt.Errorf("render.slices must be at least 2, got %d", cfg.Render.Slices)
	}
	if cfg.Render.TargetFPS <= 0 {
		return fmt.Errorf("render.targetFPS must be positive, got %d", cfg.Render.TargetFPS)
	}
	// zoomMin 0 would put the eye at the look-at target when fully zoomed in
	if cfg.Camera.ZoomMin <= 0 {
		return fmt.Errorf("camera.zoomMin must be positive, got %g", cfg.Camera.ZoomMin)
	}
	if cfg.Camera.ZoomMin >= cfg.Camera.ZoomMax {
		return fmt.Errorf("camera zoom range [%g, %g] is empty", cfg.Camera.ZoomMin, cfg.Camera.ZoomMax)
	}
	return nil
}

func (cfg *Config) VolumeDims() VolumeDims {
	return VolumeDims{
		Width:  cfg.Dataset.Width,
		Height: cfg.Dataset.Height,
		Depth:  cfg.Dataset.Depth,
	}
}

func (cfg *Config) VolumeFormat() VolumeFormat {
	f, _ := ParseVolumeFormat(cfg.Dataset.Format)
	return f
}
