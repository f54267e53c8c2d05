package lightrig

import (
	"fmt"
	"strings"
)

// RigInfo locates the members of a rig collection.
type RigInfo struct {
	Collection string
	Camera     EntityId
	HasCamera  bool
	Lights     map[Role]EntityId
	// Target is the name recorded on the rig members, if any.
	Target string
}

// Complete reports whether all three lights are present.
func (r RigInfo) Complete() bool {
	for _, role := range Roles {
		if _, ok := r.Lights[role]; !ok {
			return false
		}
	}
	return true
}

// InspectRig finds the key, fill and back lights (by name prefix) and the
// camera linked into the named collection.
func InspectRig(cmd *Commands, collection string) (RigInfo, error) {
	cols := Resource[Collections](cmd)
	if cols == nil {
		return RigInfo{}, fmt.Errorf("inspect %q: %w", collection, ErrUnknownCollection)
	}
	c, ok := cols.Get(collection)
	if !ok {
		return RigInfo{}, fmt.Errorf("inspect %q: %w", collection, ErrUnknownCollection)
	}

	info := RigInfo{Collection: collection, Lights: make(map[Role]EntityId)}
	for _, eid := range c.Objects {
		if m := GetComponent[RigMemberComponent](cmd, eid); m != nil && info.Target == "" {
			info.Target = m.Target
		}
		switch {
		case HasComponent[LightComponent](cmd, eid):
			name := ObjectName(cmd, eid)
			for _, role := range Roles {
				if _, seen := info.Lights[role]; !seen && strings.HasPrefix(name, string(role)) {
					info.Lights[role] = eid
				}
			}
		case HasComponent[CameraComponent](cmd, eid) && !info.HasCamera:
			info.Camera, info.HasCamera = eid, true
		}
	}
	if info.Target == "" {
		info.Target = strings.TrimSuffix(collection, LightsSuffix)
	}
	return info, nil
}

// TargetInView reports whether every corner of the rig target's world box is
// inside the rig camera's view.
func TargetInView(cmd *Commands, info RigInfo) (bool, error) {
	if !info.HasCamera {
		return false, fmt.Errorf("camera in %q: %w", info.Collection, ErrIncompleteRig)
	}
	target, ok := FindObject(cmd, info.Target)
	if !ok {
		return false, fmt.Errorf("target %q: %w", info.Target, ErrUnknownObject)
	}
	ob, _ := ObjectBoundsOf(cmd, target)
	tr := GetComponent[TransformComponent](cmd, info.Camera)
	cam := GetComponent[CameraComponent](cmd, info.Camera)
	if tr == nil || cam == nil {
		return false, fmt.Errorf("camera in %q: %w", info.Collection, ErrIncompleteRig)
	}
	for _, c := range ob.World().Corners() {
		if !InView(*tr, *cam, c) {
			return false, nil
		}
	}
	return true, nil
}
