package lightrig

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/lightrig/internal/logging"
)

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(logging.NewLogger(&buf, logging.LevelInfo))

	assert.False(t, l.DebugEnabled())
	l.Debugf("hidden %d", 1)
	l.Infof("placed %s", "rig")
	l.Warnf("careful")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "placed rig")
	assert.Contains(t, out, "careful")
}

func TestLoggingModule_InstallsLogger(t *testing.T) {
	var buf bytes.Buffer
	app := NewAppBuilder().
		UseModule(LoggingModule{Slog: logging.NewLogger(&buf, logging.LevelDebug)}).
		Build()

	assert.True(t, app.Logger().DebugEnabled())
	app.Logger().Debugf("ready")
	assert.Contains(t, buf.String(), "ready")
}
