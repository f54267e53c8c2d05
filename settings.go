package lightrig

import (
	"errors"
	"fmt"
)

var ErrIncompleteRig = errors.New("collection is not a complete light rig")

// RigSettings is the scene-level state behind the rig panels: the chosen
// preset, which light's properties are shown, and per-role shadow flags.
type RigSettings struct {
	Preset      string
	FrameCamera bool
	HideTarget  bool
	// Inspected is the rig collection the panels currently edit.
	Inspected string

	shown   Role
	shadows map[Role]bool
}

func NewRigSettings() *RigSettings {
	s := &RigSettings{
		Preset:      DefaultPresetKey,
		FrameCamera: true,
		HideTarget:  true,
		shadows:     make(map[Role]bool, len(Roles)),
	}
	for _, r := range Roles {
		s.shadows[r] = true
	}
	return s
}

func (s *RigSettings) Options() RigOptions {
	return RigOptions{FrameCamera: s.FrameCamera, HideTarget: s.HideTarget}
}

// SetPreset validates key before storing it.
func (s *RigSettings) SetPreset(key string) error {
	if _, err := LookupPreset(key); err != nil {
		return err
	}
	s.Preset = key
	return nil
}

// ShowRole makes role the only light whose properties are shown.
func (s *RigSettings) ShowRole(role Role) {
	s.shown = role
}

func (s *RigSettings) Shown() (Role, bool) {
	return s.shown, s.shown != ""
}

func (s *RigSettings) IsShown(role Role) bool {
	return s.shown == role
}

func (s *RigSettings) Shadow(role Role) bool {
	return s.shadows[role]
}

// SetShadow stores the flag for role and applies it to the matching light of
// the inspected rig. The flag is left as it was when the light can't be found.
func (s *RigSettings) SetShadow(cmd *Commands, role Role, enabled bool) error {
	if s.Inspected == "" {
		s.shadows[role] = enabled
		return nil
	}
	info, err := InspectRig(cmd, s.Inspected)
	if err != nil {
		return err
	}
	eid, ok := info.Lights[role]
	if !ok {
		return fmt.Errorf("%s in %q: %w", role, s.Inspected, ErrIncompleteRig)
	}
	if l := GetComponent[LightComponent](cmd, eid); l != nil {
		l.CastShadow = enabled
	}
	s.shadows[role] = enabled
	return nil
}
