package lightrig

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func discardSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRigApp(t *testing.T) (*App, *Commands) {
	t.Helper()
	app := NewAppBuilder().
		UseModule(LoggingModule{Slog: discardSlog()}, LightRigModule{}).
		Build()
	return app, app.Commands()
}

// addBox spawns a mesh with a [-half, half] local box and flushes it.
func addBox(t *testing.T, cmd *Commands, name string, tr TransformComponent, half float32, selected bool) EntityId {
	t.Helper()
	comps := []any{&tr, &BoundsComponent{Local: CubeBounds(half)}}
	if selected {
		comps = append(comps, &SelectedComponent{})
	}
	eid := SpawnObject(cmd, name, comps...)
	cmd.Flush()
	require.Equal(t, name, ObjectName(cmd, eid))
	return eid
}

func vecNear(t *testing.T, want, got mgl32.Vec3, eps float32) {
	t.Helper()
	require.Truef(t, want.ApproxEqualThreshold(got, eps), "want %v, got %v", want, got)
}
