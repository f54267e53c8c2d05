package lightrig

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRigSettings_Defaults(t *testing.T) {
	s := NewRigSettings()

	assert.Equal(t, DefaultPresetKey, s.Preset)
	assert.Equal(t, DefaultRigOptions(), s.Options())
	for _, r := range Roles {
		assert.True(t, s.Shadow(r))
	}
	_, shown := s.Shown()
	assert.False(t, shown)
}

func TestRigSettings_SetPreset(t *testing.T) {
	s := NewRigSettings()
	require.NoError(t, s.SetPreset("SambaDoBrazil"))
	assert.Equal(t, "SambaDoBrazil", s.Preset)

	assert.ErrorIs(t, s.SetPreset("Nope"), ErrUnknownPreset)
	assert.Equal(t, "SambaDoBrazil", s.Preset)
}

func TestRigSettings_ShowRoleIsExclusive(t *testing.T) {
	s := NewRigSettings()
	s.ShowRole(KeyLight)
	s.ShowRole(BackLight)

	assert.False(t, s.IsShown(KeyLight))
	assert.False(t, s.IsShown(FillLight))
	assert.True(t, s.IsShown(BackLight))
	role, ok := s.Shown()
	assert.True(t, ok)
	assert.Equal(t, BackLight, role)
}

func TestRigSettings_SetShadowAppliesToInspectedRig(t *testing.T) {
	app, cmd := newRigApp(t)
	addBox(t, cmd, "Cube", NewTransform(mgl32.Vec3{}), 1, true)
	RequestRig(cmd, "French")
	app.Update()

	s := Resource[RigSettings](cmd)
	require.Equal(t, "Cube_Lights", s.Inspected)
	require.NoError(t, s.SetShadow(cmd, FillLight, false))

	info, err := InspectRig(cmd, "Cube_Lights")
	require.NoError(t, err)
	assert.False(t, GetComponent[LightComponent](cmd, info.Lights[FillLight]).CastShadow)
	assert.True(t, GetComponent[LightComponent](cmd, info.Lights[KeyLight]).CastShadow)
	assert.False(t, s.Shadow(FillLight))

	s.Inspected = "Gone_Lights"
	assert.ErrorIs(t, s.SetShadow(cmd, KeyLight, false), ErrUnknownCollection)
	assert.True(t, s.Shadow(KeyLight), "failed call keeps the flag")

	_, err = Resource[Collections](cmd).New("Empty_Lights", SceneCollectionName)
	require.NoError(t, err)
	s.Inspected = "Empty_Lights"
	assert.ErrorIs(t, s.SetShadow(cmd, BackLight, false), ErrIncompleteRig)
	assert.True(t, s.Shadow(BackLight))
}

func TestRigSettings_SetShadowWithoutRig(t *testing.T) {
	_, cmd := newRigApp(t)
	s := Resource[RigSettings](cmd)
	require.NoError(t, s.SetShadow(cmd, BackLight, false))
	assert.False(t, s.Shadow(BackLight))
}
