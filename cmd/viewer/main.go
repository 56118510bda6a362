package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	volview "github.com/ricardoassaad/3d-viewer"
)

func main() {
	configPath := flag.String("config", "viewer.yaml", "Path to the YAML configuration file")
	dataPath := flag.String("data", "", "Raw volume file (overrides the config)")
	exportSlice := flag.Int("export-slice", -1, "Export this slice index as PNG and exit, without opening a window")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := volview.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dataPath != "" {
		cfg.Dataset.Path = *dataPath
	}

	volume, err := volview.LoadVolumeFile(cfg.Dataset.Path, cfg.VolumeDims(), cfg.VolumeFormat())
	if err != nil {
		log.Fatalf("Failed to load volume: %v", err)
	}
	if cfg.Dataset.Normalize {
		volume.Normalize()
	}

	if *exportSlice >= 0 {
		name := fmt.Sprintf("slice_%03d.png", *exportSlice)
		path := filepath.Join(cfg.Export.Dir, name)
		if err := volview.ExportSlicePNG(volume, *exportSlice, cfg.Export.PreviewSize, path); err != nil {
			log.Fatalf("Failed to export slice: %v", err)
		}
		fmt.Println("exported", path)
		return
	}

	app := volview.NewAppBuilder().
		WithTargetFPS(cfg.Render.TargetFPS).
		UseModule(
			volview.LoggingModule{Prefix: "viewer", Debug: *debug},
			volview.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			volview.InputModule{},
			volview.TimeModule{},
			volview.AssetServerModule{},
			volview.ViewerModule{Config: cfg, Volume: volume},
			volview.OrbitCameraModule{
				RotateSensitivity: cfg.Camera.RotateSensitivity,
				ZoomSensitivity:   cfg.Camera.ZoomSensitivity,
				ZoomMin:           cfg.Camera.ZoomMin,
				ZoomMax:           cfg.Camera.ZoomMax,
				InitialZoom:       cfg.Camera.InitialZoom,
			},
			volview.VolumeRendererModule{
				SliceCount:       cfg.Render.Slices,
				AlphaScale:       cfg.Render.AlphaScale,
				DiscardThreshold: cfg.Render.DiscardThreshold,
			},
		).
		Build()

	app.Run()
}
