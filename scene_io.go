package lightrig

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type SceneFormat int

const (
	FormatYAML SceneFormat = iota
	FormatJSON
)

// FormatForPath picks the scene format from a file extension.
func FormatForPath(path string) (SceneFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unsupported scene file extension %q", filepath.Ext(path))
}

type SceneData struct {
	ActiveCamera string           `json:"active_camera,omitempty" yaml:"active_camera,omitempty"`
	Objects      []ObjectData     `json:"objects" yaml:"objects"`
	Collections  []CollectionData `json:"collections,omitempty" yaml:"collections,omitempty"`
}

type ObjectData struct {
	Name     string     `json:"name" yaml:"name"`
	Kind     string     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Position [3]float32 `json:"position" yaml:"position"`
	// Rotation is a quaternion as [w, x, y, z].
	Rotation *[4]float32 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	// RotationEuler is XYZ Euler angles in degrees; used when Rotation is absent.
	RotationEuler *[3]float32     `json:"rotation_euler,omitempty" yaml:"rotation_euler,omitempty"`
	Scale         *[3]float32     `json:"scale,omitempty" yaml:"scale,omitempty"`
	Bounds        *BoundsData     `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Light         *LightData      `json:"light,omitempty" yaml:"light,omitempty"`
	Camera        *CameraData     `json:"camera,omitempty" yaml:"camera,omitempty"`
	Visibility    *VisibilityData `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Selected      bool            `json:"selected,omitempty" yaml:"selected,omitempty"`
	Rig           *RigMemberData  `json:"rig,omitempty" yaml:"rig,omitempty"`
}

type BoundsData struct {
	Min [3]float32 `json:"min" yaml:"min"`
	Max [3]float32 `json:"max" yaml:"max"`
}

type LightData struct {
	Type       string     `json:"type" yaml:"type"`
	Color      [3]float32 `json:"color" yaml:"color"`
	Energy     float32    `json:"energy" yaml:"energy"`
	Size       float32    `json:"size" yaml:"size"`
	CastShadow bool       `json:"cast_shadow" yaml:"cast_shadow"`
}

type CameraData struct {
	Lens        float32 `json:"lens" yaml:"lens"`
	SensorWidth float32 `json:"sensor_width" yaml:"sensor_width"`
	Aspect      float32 `json:"aspect" yaml:"aspect"`
	ClipStart   float32 `json:"clip_start" yaml:"clip_start"`
	ClipEnd     float32 `json:"clip_end" yaml:"clip_end"`
}

type VisibilityData struct {
	HideViewport bool `json:"hide_viewport,omitempty" yaml:"hide_viewport,omitempty"`
	HideRender   bool `json:"hide_render,omitempty" yaml:"hide_render,omitempty"`
	Wire         bool `json:"wire,omitempty" yaml:"wire,omitempty"`
}

type RigMemberData struct {
	ID     string `json:"id" yaml:"id"`
	Role   string `json:"role,omitempty" yaml:"role,omitempty"`
	Target string `json:"target" yaml:"target"`
}

type CollectionData struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string   `json:"name" yaml:"name"`
	Objects  []string `json:"objects,omitempty" yaml:"objects,omitempty"`
	Children []string `json:"children,omitempty" yaml:"children,omitempty"`
}

// CaptureScene snapshots every named object and collection.
func CaptureScene(cmd *Commands) SceneData {
	var data SceneData

	MakeQuery2[NameComponent, TransformComponent](cmd).Map(func(eid EntityId, n *NameComponent, tr *TransformComponent) bool {
		q := tr.Rotation.Normalize()
		rot := [4]float32{q.W, q.V.X(), q.V.Y(), q.V.Z()}
		e := QuatToEuler(q)
		euler := [3]float32{mgl32.RadToDeg(e.X()), mgl32.RadToDeg(e.Y()), mgl32.RadToDeg(e.Z())}
		scale := [3]float32(tr.Scale)
		od := ObjectData{
			Name:          n.Name,
			Kind:          ObjectKind(cmd, eid),
			Position:      tr.Position,
			Rotation:      &rot,
			RotationEuler: &euler,
			Scale:         &scale,
			Selected:      HasComponent[SelectedComponent](cmd, eid),
		}

		for _, c := range cmd.GetAllComponents(eid) {
			switch comp := c.(type) {
			case BoundsComponent:
				od.Bounds = &BoundsData{Min: comp.Local.Min, Max: comp.Local.Max}
			case LightComponent:
				od.Light = &LightData{
					Type:       comp.Type.String(),
					Color:      comp.Color,
					Energy:     comp.Energy,
					Size:       comp.Size,
					CastShadow: comp.CastShadow,
				}
			case CameraComponent:
				od.Camera = &CameraData{
					Lens:        comp.Lens,
					SensorWidth: comp.SensorWidth,
					Aspect:      comp.Aspect,
					ClipStart:   comp.ClipStart,
					ClipEnd:     comp.ClipEnd,
				}
			case VisibilityComponent:
				if comp != (VisibilityComponent{}) {
					od.Visibility = &VisibilityData{HideViewport: comp.HideViewport, HideRender: comp.HideRender, Wire: comp.Wire}
				}
			case RigMemberComponent:
				od.Rig = &RigMemberData{ID: comp.RigID, Role: string(comp.Role), Target: comp.Target}
			}
		}
		data.Objects = append(data.Objects, od)
		return true
	})

	if cols := Resource[Collections](cmd); cols != nil {
		for _, name := range cols.Names() {
			c, _ := cols.Get(name)
			cd := CollectionData{ID: c.ID.String(), Name: c.Name, Children: c.Children}
			for _, eid := range c.Objects {
				if on := ObjectName(cmd, eid); on != "" {
					cd.Objects = append(cd.Objects, on)
				}
			}
			data.Collections = append(data.Collections, cd)
		}
	}
	if cam := Resource[SceneCamera](cmd); cam != nil && cam.Set {
		data.ActiveCamera = ObjectName(cmd, cam.Entity)
	}
	return data
}

// RestoreScene spawns the objects and collections in data. The app must have
// SceneModule installed. Objects listed in no collection go to the root.
// data is checked in full first, so a failed restore changes nothing.
func RestoreScene(cmd *Commands, data SceneData) ([]EntityId, error) {
	cols := Resource[Collections](cmd)
	if cols == nil {
		return nil, fmt.Errorf("restore scene: %w", ErrUnknownCollection)
	}
	if err := checkScene(cmd, data); err != nil {
		return nil, err
	}

	ids := make(map[string]EntityId, len(data.Objects))
	created := make([]EntityId, 0, len(data.Objects))
	for _, od := range data.Objects {
		eid := cmd.AddEntity(objectComponents(od)...)
		ids[od.Name] = eid
		created = append(created, eid)
	}

	// Parents before children
	for _, cd := range data.Collections {
		if _, ok := cols.Get(cd.Name); ok {
			continue
		}
		id, err := uuid.Parse(cd.ID)
		if err != nil {
			id = uuid.New()
		}
		if _, err := cols.NewWithID(cd.Name, parentOf(data.Collections, cd.Name), id); err != nil {
			return nil, err
		}
	}
	for _, cd := range data.Collections {
		for _, on := range cd.Objects {
			if err := cols.Link(cd.Name, ids[on]); err != nil {
				return nil, err
			}
		}
	}
	for _, eid := range created {
		if cols.Users(eid) == 0 {
			if err := cols.Link(SceneCollectionName, eid); err != nil {
				return nil, err
			}
		}
	}

	cmd.Flush()

	if data.ActiveCamera != "" {
		if cam := Resource[SceneCamera](cmd); cam != nil {
			cam.Use(ids[data.ActiveCamera])
		}
	}
	return created, nil
}

// checkScene validates object names and every name a collection or the
// active camera refers to.
func checkScene(cmd *Commands, data SceneData) error {
	names := make(map[string]bool, len(data.Objects))
	for _, od := range data.Objects {
		if od.Name == "" {
			return fmt.Errorf("object without a name")
		}
		if names[od.Name] {
			return fmt.Errorf("duplicate object name %q", od.Name)
		}
		if _, live := FindObject(cmd, od.Name); live {
			return fmt.Errorf("object %q already exists", od.Name)
		}
		names[od.Name] = true
	}
	for _, cd := range data.Collections {
		if cd.Name == "" {
			return fmt.Errorf("collection without a name: %w", ErrUnknownCollection)
		}
		for _, on := range cd.Objects {
			if !names[on] {
				return fmt.Errorf("collection %q lists %q: %w", cd.Name, on, ErrUnknownObject)
			}
		}
	}
	if data.ActiveCamera != "" && !names[data.ActiveCamera] {
		return fmt.Errorf("active camera %q: %w", data.ActiveCamera, ErrUnknownObject)
	}
	return nil
}

// parentOf finds the collection listing name as a child, defaulting to root.
// Only earlier collections qualify so parents always exist first.
func parentOf(all []CollectionData, name string) string {
	for _, cd := range all {
		if cd.Name == name {
			break
		}
		for _, child := range cd.Children {
			if child == name {
				return cd.Name
			}
		}
	}
	return SceneCollectionName
}

func objectComponents(od ObjectData) []any {
	tr := NewTransform(od.Position)
	switch {
	case od.Rotation != nil:
		r := od.Rotation
		tr.Rotation = mgl32.Quat{W: r[0], V: mgl32.Vec3{r[1], r[2], r[3]}}.Normalize()
	case od.RotationEuler != nil:
		e := od.RotationEuler
		tr.Rotation = EulerToQuat(mgl32.Vec3{mgl32.DegToRad(e[0]), mgl32.DegToRad(e[1]), mgl32.DegToRad(e[2])})
	}
	if od.Scale != nil {
		tr.Scale = *od.Scale
	}

	comps := []any{&NameComponent{Name: od.Name}, &tr}
	if od.Bounds != nil {
		comps = append(comps, &BoundsComponent{Local: BoundingBox{Min: od.Bounds.Min, Max: od.Bounds.Max}})
	} else if od.Kind == "mesh" {
		comps = append(comps, &BoundsComponent{Local: CubeBounds(1)})
	}
	if od.Light != nil {
		comps = append(comps, &LightComponent{
			Type:       ParseLightType(od.Light.Type),
			Color:      od.Light.Color,
			Energy:     od.Light.Energy,
			Size:       od.Light.Size,
			CastShadow: od.Light.CastShadow,
		})
	}
	if od.Camera != nil {
		cam := DefaultCamera()
		if od.Camera.Lens > 0 {
			cam.Lens = od.Camera.Lens
		}
		if od.Camera.SensorWidth > 0 {
			cam.SensorWidth = od.Camera.SensorWidth
		}
		if od.Camera.Aspect > 0 {
			cam.Aspect = od.Camera.Aspect
		}
		if od.Camera.ClipStart > 0 {
			cam.ClipStart = od.Camera.ClipStart
		}
		if od.Camera.ClipEnd > 0 {
			cam.ClipEnd = od.Camera.ClipEnd
		}
		comps = append(comps, &cam)
	} else if od.Kind == "camera" {
		cam := DefaultCamera()
		comps = append(comps, &cam)
	}
	if od.Visibility != nil {
		comps = append(comps, &VisibilityComponent{
			HideViewport: od.Visibility.HideViewport,
			HideRender:   od.Visibility.HideRender,
			Wire:         od.Visibility.Wire,
		})
	}
	if od.Selected {
		comps = append(comps, &SelectedComponent{})
	}
	if od.Rig != nil {
		comps = append(comps, &RigMemberComponent{RigID: od.Rig.ID, Role: Role(od.Rig.Role), Target: od.Rig.Target})
	}
	return comps
}

func EncodeScene(w io.Writer, data SceneData, format SceneFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}
}

func DecodeScene(r io.Reader, format SceneFormat) (SceneData, error) {
	var data SceneData
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&data)
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&data)
	}
	if err != nil {
		return SceneData{}, fmt.Errorf("decode scene: %w", err)
	}
	return data, nil
}

// SaveScene writes the scene to path; the extension picks the format.
func SaveScene(cmd *Commands, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeScene(f, CaptureScene(cmd), format); err != nil {
		f.Close()
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	return f.Close()
}

// LoadScene reads path and restores it into the app behind cmd.
func LoadScene(cmd *Commands, path string) ([]EntityId, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := DecodeScene(f, format)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	return RestoreScene(cmd, data)
}
