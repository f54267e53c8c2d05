package cli

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/gekko3d/lightrig"
)

// newPlanCommand creates "plan", which prints the rig for a box as JSON
// without touching a scene.
func newPlanCommand(opts *Options) *cobra.Command {
	var (
		dims   []float32
		center []float32
		preset string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print camera and light placement for a bounding box as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(dims) != 3 {
				return fmt.Errorf("--dims needs three values, got %d", len(dims))
			}
			if len(center) != 3 {
				return fmt.Errorf("--center needs three values, got %d", len(center))
			}
			p, err := lightrig.LookupPreset(preset)
			if err != nil {
				return err
			}

			c := mgl32.Vec3{center[0], center[1], center[2]}
			half := mgl32.Vec3{dims[0], dims[1], dims[2]}.Mul(0.5)
			box := lightrig.BoundingBox{Min: c.Sub(half), Max: c.Add(half)}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(lightrig.PlanRig(box, p))
		},
	}

	cmd.Flags().Float32SliceVar(&dims, "dims", nil, "Box dimensions X,Y,Z")
	cmd.Flags().Float32SliceVar(&center, "center", []float32{0, 0, 0}, "Box center X,Y,Z")
	cmd.Flags().StringVarP(&preset, "preset", "p", opts.Config.Preset, "Preset key")
	_ = cmd.MarkFlagRequired("dims")

	return cmd
}
