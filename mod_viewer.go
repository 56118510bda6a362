package volview

import (
	"fmt"
	"path/filepath"
	"time"
)

// ViewerModule is the glue between the dataset and the rest of the app: it
// registers the volume and shader assets, seeds the camera-facing resources,
// and installs the viewer's key bindings (Escape quits, R resets the view,
// E exports the current middle slice).
type ViewerModule struct {
	Config *Config
	Volume *VolumeAsset
}

type exportSettings struct {
	Dir         string
	PreviewSize int
	Depth       int
}

func (m ViewerModule) Install(app *App, cmd *Commands) {
	if m.Config == nil || m.Volume == nil {
		panic("ViewerModule requires a loaded Config and Volume")
	}
	logger := app.Logger()

	server := resourceOf[AssetServer](app)
	if server == nil {
		panic("ViewerModule requires the AssetServer resource")
	}
	registerDefaultShaders(server)
	server.AddVolume(m.Volume)
	cmd.AddResources(m.Volume)

	stats := ComputeStats(m.Volume)
	logger.Infof("volume %dx%dx%d %s: min=%.4f max=%.4f mean=%.4f std=%.4f",
		m.Volume.Dims.Width, m.Volume.Dims.Height, m.Volume.Dims.Depth, m.Volume.Format,
		stats.Min, stats.Max, stats.Mean, stats.StdDev)

	cmd.AddResources(&exportSettings{
		Dir:         m.Config.Export.Dir,
		PreviewSize: m.Config.Export.PreviewSize,
		Depth:       m.Volume.Dims.Depth / 2,
	})

	app.UseSystem(System(viewerQuitSystem).InStage(Update))
	app.UseSystem(System(viewerHotkeySystem).InStage(Update))
}

func viewerQuitSystem(s *WindowState, input *Input, cmd *Commands) {
	if s.ShouldClose() || input.JustPressed[KeyEscape] {
		cmd.Quit()
	}
}

func viewerHotkeySystem(input *Input, cam *OrbitCamera, volume *VolumeAsset, export *exportSettings, logger *DefaultLogger) {
	if input.JustPressed[KeyR] {
		cam.Reset()
	}
	if input.JustPressed[KeyE] {
		name := fmt.Sprintf("slice_%03d_%s.png", export.Depth, time.Now().Format("150405"))
		path := filepath.Join(export.Dir, name)
		if err := ExportSlicePNG(volume, export.Depth, export.PreviewSize, path); err != nil {
			logger.Errorf("slice export failed: %v", err)
		} else {
			logger.Infof("exported %s", path)
		}
	}
}
