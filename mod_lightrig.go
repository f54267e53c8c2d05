package lightrig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var ErrNoSelection = errors.New("no object selected")

// LightsSuffix is appended to the target name to name its rig collection.
const LightsSuffix = "_Lights"

// BoundingCubePrefix names the synthetic target spawned for a multi-object
// selection.
const BoundingCubePrefix = "Scene"

type RigOptions struct {
	// FrameCamera fits the camera to the target after aiming it.
	FrameCamera bool
	// HideTarget hides the target from the viewport once the rig exists.
	HideTarget bool
}

func DefaultRigOptions() RigOptions {
	return RigOptions{FrameCamera: true, HideTarget: true}
}

type RigResult struct {
	RigID      string
	Target     EntityId
	TargetName string
	// Synthetic is set when Target is a bounding cube over several objects.
	Synthetic  bool
	Collection string
	Camera     EntityId
	Lights     map[Role]EntityId
	Plan       RigPlan
}

// RigCollectionName is the collection holding the rig built for target.
func RigCollectionName(target string) string {
	return target + LightsSuffix
}

// PlaceRig places a camera and three area lights around the selection using
// the named preset. It replaces any rig already built for the same target.
// On error nothing in the scene is changed.
func PlaceRig(cmd *Commands, presetKey string, opts RigOptions) (*RigResult, error) {
	preset, err := LookupPreset(presetKey)
	if err != nil {
		return nil, err
	}
	selected := SelectedObjects(cmd)
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}
	cols := Resource[Collections](cmd)
	if cols == nil {
		return nil, fmt.Errorf("place rig: %w", ErrUnknownCollection)
	}
	log := cmd.Logger()

	res := &RigResult{RigID: uuid.NewString(), Lights: make(map[Role]EntityId)}

	objs := make([]ObjectBounds, 0, len(selected))
	for _, eid := range selected {
		if ob, ok := ObjectBoundsOf(cmd, eid); ok {
			objs = append(objs, ob)
		}
	}
	if len(objs) == 0 {
		return nil, fmt.Errorf("selection has no transform: %w", ErrNoSelection)
	}

	var bounds BoundingBox
	if len(selected) > 1 {
		bounds = UnionBounds(objs...)
		DeselectAll(cmd)
		res.Target, res.TargetName = spawnBoundingCube(cmd, bounds, opts.HideTarget)
		res.Synthetic = true
		log.Debugf("merged %d objects into %s", len(selected), res.TargetName)
	} else {
		res.Target = selected[0]
		res.TargetName = ObjectName(cmd, res.Target)
		bounds = objs[0].World()
	}

	res.Plan = PlanRig(bounds, preset)
	res.Collection = RigCollectionName(res.TargetName)

	coll, err := replaceCollection(cmd, cols, res.Collection, res.Target)
	if err != nil {
		return nil, err
	}
	// Apply the removals and the bounding cube so names below resolve
	// against the new scene.
	cmd.Flush()

	if strings.HasPrefix(res.TargetName, BoundingCubePrefix) {
		err = cols.Move(res.Target, coll.Name)
	} else if cols.Users(res.Target) == 0 {
		err = cols.Link(SceneCollectionName, res.Target)
	}
	if err != nil {
		return nil, fmt.Errorf("link target %s: %w", res.TargetName, err)
	}

	res.Camera = spawnRigCamera(cmd, res, opts)
	for _, lp := range res.Plan.Lights {
		res.Lights[lp.Role] = spawnRigLight(cmd, res, lp)
	}
	for _, eid := range append([]EntityId{res.Camera}, lightsInOrder(res.Lights)...) {
		if err := cols.Move(eid, coll.Name); err != nil {
			return nil, fmt.Errorf("move %s into %s: %w", ObjectName(cmd, eid), coll.Name, err)
		}
	}

	if opts.HideTarget && !res.Synthetic {
		vis := VisibilityComponent{}
		if v := GetComponent[VisibilityComponent](cmd, res.Target); v != nil {
			vis = *v
		}
		vis.HideViewport = true
		cmd.AddComponents(res.Target, vis)
	}
	cmd.Flush()

	if cam := Resource[SceneCamera](cmd); cam != nil {
		cam.Use(res.Camera)
	}
	log.Infof("placed %s rig around %s (distance %.3f, key energy %.2f W)",
		preset.Key, res.TargetName, res.Plan.Distance, res.Plan.Lights[0].Energy)
	return res, nil
}

// replaceCollection destroys any collection called name, deleting the
// objects only it links (except keep), then creates it empty under the root.
func replaceCollection(cmd *Commands, cols *Collections, name string, keep EntityId) (*Collection, error) {
	if old, ok := cols.Get(name); ok {
		deleted := 0
		for _, eid := range old.Objects {
			if eid == keep || cols.Users(eid) != 1 {
				continue
			}
			cmd.RemoveEntity(eid)
			deleted++
		}
		if err := cols.Remove(name); err != nil {
			return nil, err
		}
		cmd.Logger().Debugf("replaced collection %s, deleted %d objects", name, deleted)
	}
	return cols.New(name, SceneCollectionName)
}

// spawnBoundingCube queues a wireframe cube named Scene.N spanning bounds,
// selected and hidden from render.
func spawnBoundingCube(cmd *Commands, bounds BoundingBox, hideViewport bool) (EntityId, string) {
	name := nextBoundingCubeName(cmd)
	tr := NewTransform(bounds.Center())
	tr.Scale = bounds.Dimensions().Mul(0.5)

	eid := SpawnObject(cmd, name,
		&tr,
		&BoundsComponent{Local: CubeBounds(1)},
		&VisibilityComponent{Wire: true, HideRender: true, HideViewport: hideViewport},
		&SelectedComponent{},
	)
	return eid, name
}

func nextBoundingCubeName(cmd *Commands) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%d", BoundingCubePrefix, i)
		if _, taken := FindObject(cmd, name); !taken {
			return name
		}
	}
}

func spawnRigCamera(cmd *Commands, res *RigResult, opts RigOptions) EntityId {
	tr := NewTransform(res.Plan.Camera.Position)
	tr.Rotation = res.Plan.Camera.Rotation
	cam := DefaultCamera()
	if opts.FrameCamera {
		tr, cam = FrameBounds(tr, cam, res.Plan.Target)
	}
	return SpawnObject(cmd, "Camera_"+res.TargetName,
		&tr,
		&cam,
		&RigMemberComponent{RigID: res.RigID, Target: res.TargetName},
	)
}

func spawnRigLight(cmd *Commands, res *RigResult, lp LightPlan) EntityId {
	tr := TransformComponent{
		Position: lp.Position,
		Rotation: lp.Rotation,
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	light := areaLight(lp)
	return SpawnObject(cmd, string(lp.Role)+"_"+res.TargetName,
		&tr,
		&light,
		&RigMemberComponent{RigID: res.RigID, Role: lp.Role, Target: res.TargetName},
	)
}

func lightsInOrder(lights map[Role]EntityId) []EntityId {
	out := make([]EntityId, 0, len(lights))
	for _, r := range Roles {
		if eid, ok := lights[r]; ok {
			out = append(out, eid)
		}
	}
	return out
}

type OperatorResult int

const (
	Finished OperatorResult = iota
	Cancelled
)

func (r OperatorResult) String() string {
	if r == Finished {
		return "FINISHED"
	}
	return "CANCELLED"
}

type ReportLevel string

const (
	ReportInfo    ReportLevel = "INFO"
	ReportWarning ReportLevel = "WARNING"
)

type Report struct {
	Level   ReportLevel
	Message string
}

// RigRun is the outcome of one queued operator call.
type RigRun struct {
	Preset string
	Result OperatorResult
	Rig    *RigResult
	Err    error
}

// RigReports collects operator outcomes and user-facing reports.
type RigReports struct {
	Runs    []RigRun
	Reports []Report
}

func (r *RigReports) Last() (RigRun, bool) {
	if len(r.Runs) == 0 {
		return RigRun{}, false
	}
	return r.Runs[len(r.Runs)-1], true
}

// RigQueue holds operator requests until PlaceRigSystem runs.
type RigQueue struct {
	pending []string
}

// RequestRig queues a rig placement for the current selection.
func RequestRig(cmd *Commands, presetKey string) {
	q := Resource[RigQueue](cmd)
	q.pending = append(q.pending, presetKey)
}

// RigStage runs queued rig requests. It sits between Update and PostUpdate so
// requests made by Update systems are handled in the same frame.
var RigStage = Stage{Name: "LightRig"}

// LightRigModule installs the rig operator. Requests queued with RequestRig
// run in RigStage using the options in RigSettings.
type LightRigModule struct{}

func (LightRigModule) Install(app *App, cmd *Commands) {
	if Resource[Collections](cmd) == nil {
		SceneModule{}.Install(app, cmd)
	}
	cmd.AddResources(NewRigSettings(), &RigQueue{}, &RigReports{})
	app.UseStage(RigStage, BeforeStage(PostUpdate))
	app.UseSystem(System(PlaceRigSystem).InStage(RigStage))
}

func PlaceRigSystem(cmd *Commands, queue *RigQueue, settings *RigSettings, reports *RigReports) {
	requests := queue.pending
	queue.pending = nil

	for _, key := range requests {
		if key == "" {
			key = settings.Preset
		}
		rig, err := PlaceRig(cmd, key, settings.Options())
		run := RigRun{Preset: key, Rig: rig, Err: err, Result: Finished}
		if err != nil {
			run.Result = Cancelled
			msg := operatorMessage(err)
			cmd.Logger().Warnf("%s", msg)
			reports.Reports = append(reports.Reports, Report{Level: ReportWarning, Message: msg})
		} else {
			settings.Inspected = rig.Collection
			reports.Reports = append(reports.Reports, Report{
				Level:   ReportInfo,
				Message: fmt.Sprintf("Added %s lights around %s", key, rig.TargetName),
			})
		}
		reports.Runs = append(reports.Runs, run)
	}
}

func operatorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnknownPreset):
		return "Unknown preset"
	case errors.Is(err, ErrNoSelection):
		return "No object selected"
	}
	return err.Error()
}
