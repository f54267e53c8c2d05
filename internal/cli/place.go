package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gekko3d/lightrig"
)

// newPlaceCommand creates "place", which runs the rig operator on a scene file.
func newPlaceCommand(opts *Options) *cobra.Command {
	var (
		scenePath   string
		selectNames []string
		preset      string
		out         string
		noFrame     bool
		keepVisible bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place a camera and three area lights around the selected objects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			app, c, err := openScene(logger, scenePath)
			if err != nil {
				return err
			}
			if len(selectNames) > 0 {
				if err := lightrig.SelectByName(c, selectNames...); err != nil {
					return err
				}
			}
			if interactive {
				if preset, err = pickPreset(preset); err != nil {
					return err
				}
			}

			settings := lightrig.Resource[lightrig.RigSettings](c)
			settings.FrameCamera = opts.Config.FrameCamera && !noFrame
			settings.HideTarget = opts.Config.HideTarget && !keepVisible

			lightrig.RequestRig(c, preset)
			app.Update()

			reports := lightrig.Resource[lightrig.RigReports](c)
			for _, r := range reports.Reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Level, r.Message)
			}
			run, ok := reports.Last()
			if !ok {
				return fmt.Errorf("rig operator did not run")
			}
			if run.Result == lightrig.Cancelled {
				return fmt.Errorf("%s: %w", run.Result, run.Err)
			}

			rig := run.Rig
			fmt.Fprintf(cmd.OutOrStdout(), "collection %s\n", rig.Collection)
			fmt.Fprintf(cmd.OutOrStdout(), "  camera  %s\n", lightrig.ObjectName(c, rig.Camera))
			for _, lp := range rig.Plan.Lights {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-9s %s  %.2f W  %s\n",
					lp.Role, lightrig.ObjectName(c, rig.Lights[lp.Role]), lp.Energy, formatColor(lp.Color))
			}
			logger.Info("rig placed", "preset", run.Preset, "target", rig.TargetName, "collection", rig.Collection)

			return saveScene(logger, c, scenePath, out)
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "Scene file (.yaml, .yml or .json)")
	cmd.Flags().StringSliceVar(&selectNames, "select", nil, "Objects to select before placing (comma-separated); defaults to the selection stored in the scene")
	cmd.Flags().StringVarP(&preset, "preset", "p", opts.Config.Preset, "Preset key")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output scene file (defaults to --scene)")
	cmd.Flags().BoolVar(&noFrame, "no-frame", false, "Keep the planned camera position instead of framing the target")
	cmd.Flags().BoolVar(&keepVisible, "keep-visible", false, "Do not hide the target in the viewport")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the preset from a menu")
	_ = cmd.MarkFlagRequired("scene")

	return cmd
}

// pickPreset asks for a preset in a terminal form, starting at current.
func pickPreset(current string) (string, error) {
	options := make([]huh.Option[string], 0, len(lightrig.PresetKeys()))
	for _, p := range lightrig.Presets() {
		options = append(options, huh.NewOption(p.Label, p.Key))
	}
	choice := current

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Light preset").
				Description("Colors and base energy of the key, fill and back lights.").
				Key("preset").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("preset picker: %w", err)
	}
	return choice, nil
}
