package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gekko3d/lightrig"
)

// openScene builds an app with the rig operator installed and loads path
// into it.
func openScene(logger *slog.Logger, path string) (*lightrig.App, *lightrig.Commands, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("--scene is required")
	}
	app := lightrig.NewAppBuilder().
		UseModule(
			lightrig.LoggingModule{Slog: logger},
			lightrig.LightRigModule{},
		).
		Build()
	cmd := app.Commands()
	created, err := lightrig.LoadScene(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("scene loaded", "path", path, "objects", len(created))
	return app, cmd, nil
}

// saveScene writes the scene to out, falling back to the input path.
func saveScene(logger *slog.Logger, cmd *lightrig.Commands, in, out string) error {
	if out == "" {
		out = in
	}
	if err := lightrig.SaveScene(cmd, out); err != nil {
		return err
	}
	logger.Debug("scene written", "path", out)
	return nil
}

func formatColor(c [3]float32) string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c[0]), to8(c[1]), to8(c[2]))
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
