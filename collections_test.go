package lightrig

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollections_LinkAndUsers(t *testing.T) {
	cols := NewCollections()
	_, err := cols.New("Props", SceneCollectionName)
	require.NoError(t, err)

	require.NoError(t, cols.Link(SceneCollectionName, 1))
	require.NoError(t, cols.Link("Props", 1))
	require.NoError(t, cols.Link("Props", 1))

	assert.Equal(t, 2, cols.Users(1))
	assert.Equal(t, []string{SceneCollectionName, "Props"}, cols.Of(1))
	assert.ErrorIs(t, cols.Link("Missing", 1), ErrUnknownCollection)

	cols.Unlink("Props", 1)
	assert.Equal(t, 1, cols.Users(1))
}

func TestCollections_Move(t *testing.T) {
	cols := NewCollections()
	cols.New("A", SceneCollectionName)
	cols.New("B", "A")
	cols.Link(SceneCollectionName, 7)
	cols.Link("A", 7)

	require.NoError(t, cols.Move(7, "B"))
	assert.Equal(t, []string{"B"}, cols.Of(7))
	assert.ErrorIs(t, cols.Move(7, "C"), ErrUnknownCollection)
}

func TestCollections_NewErrors(t *testing.T) {
	cols := NewCollections()
	_, err := cols.New("A", "Nowhere")
	assert.ErrorIs(t, err, ErrUnknownCollection)

	_, err = cols.New("A", SceneCollectionName)
	require.NoError(t, err)
	_, err = cols.New("A", SceneCollectionName)
	assert.ErrorIs(t, err, ErrCollectionExists)

	id := uuid.New()
	c, err := cols.NewWithID("B", "A", id)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
}

func TestCollections_RemoveReparentsChildren(t *testing.T) {
	cols := NewCollections()
	cols.New("Parent", SceneCollectionName)
	cols.New("Child", "Parent")
	cols.Link("Parent", 3)

	require.NoError(t, cols.Remove("Parent"))
	_, ok := cols.Get("Parent")
	assert.False(t, ok)
	assert.Contains(t, cols.Root().Children, "Child")
	assert.NotContains(t, cols.Root().Children, "Parent")
	assert.Equal(t, 0, cols.Users(3), "objects are unlinked, not deleted")

	assert.Error(t, cols.Remove(SceneCollectionName))
	assert.ErrorIs(t, cols.Remove("Parent"), ErrUnknownCollection)
}

func TestSceneModule_ForgetsRemovedEntities(t *testing.T) {
	_, cmd := newRigApp(t)
	cols := Resource[Collections](cmd)

	eid := SpawnObject(cmd, "Cam", &TransformComponent{}, &CameraComponent{})
	cmd.Flush()
	Resource[SceneCamera](cmd).Use(eid)
	require.Equal(t, 1, cols.Users(eid))

	cmd.RemoveEntity(eid)
	cmd.Flush()
	assert.Equal(t, 0, cols.Users(eid))
	assert.False(t, Resource[SceneCamera](cmd).Set)
}
