package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gekko3d/lightrig"
)

// newInspectCommand creates "inspect", describing the rig in a collection.
func newInspectCommand(_ *Options) *cobra.Command {
	var (
		scenePath  string
		collection string
		show       string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe the camera and lights of a rig collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			_, c, err := openScene(logger, scenePath)
			if err != nil {
				return err
			}
			info, err := lightrig.InspectRig(c, collection)
			if err != nil {
				return err
			}

			settings := lightrig.Resource[lightrig.RigSettings](c)
			settings.Inspected = collection
			if show != "" {
				role, err := lightrig.ParseRole(show)
				if err != nil {
					return err
				}
				settings.ShowRole(role)
			}
			_, filtered := settings.Shown()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "collection %s (target %s)\n", info.Collection, info.Target)
			if target, ok := lightrig.FindObject(c, info.Target); ok {
				if ob, ok := lightrig.ObjectBoundsOf(c, target); ok {
					d := ob.Dimensions()
					fmt.Fprintf(w, "  target    dimensions %.3f x %.3f x %.3f\n", d.X(), d.Y(), d.Z())
				}
			}
			if info.HasCamera {
				inView, err := lightrig.TargetInView(c, info)
				if err != nil {
					logger.Warn("target visibility unknown", "error", err)
				}
				fmt.Fprintf(w, "  camera    %s  target in view: %t\n", lightrig.ObjectName(c, info.Camera), inView)
			} else {
				fmt.Fprintln(w, "  camera    missing")
			}
			for _, role := range lightrig.Roles {
				if filtered && !settings.IsShown(role) {
					continue
				}
				eid, ok := info.Lights[role]
				if !ok {
					fmt.Fprintf(w, "  %-9s missing\n", role)
					continue
				}
				l := lightrig.GetComponent[lightrig.LightComponent](c, eid)
				fmt.Fprintf(w, "  %-9s %s  %s %.2f W  size %g  %s  shadow %t\n",
					role, lightrig.ObjectName(c, eid), l.Type, l.Energy, l.Size, formatColor(l.Color), l.CastShadow)
			}
			if !info.Complete() {
				return fmt.Errorf("%s: %w", collection, lightrig.ErrIncompleteRig)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "Scene file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Rig collection, e.g. Cube_Lights")
	cmd.Flags().StringVar(&show, "show", "", "Only describe this light (key, fill, back)")
	_ = cmd.MarkFlagRequired("scene")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}

// newShadowCommand creates "shadow", toggling shadow casting on one rig light.
func newShadowCommand(_ *Options) *cobra.Command {
	var (
		scenePath  string
		collection string
		roleName   string
		off        bool
		out        string
	)

	cmd := &cobra.Command{
		Use:   "shadow",
		Short: "Turn shadow casting of a rig light on or off",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			role, err := lightrig.ParseRole(roleName)
			if err != nil {
				return err
			}
			_, c, err := openScene(logger, scenePath)
			if err != nil {
				return err
			}

			settings := lightrig.Resource[lightrig.RigSettings](c)
			settings.Inspected = collection
			settings.ShowRole(role)
			if err := settings.SetShadow(c, role, !off); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s in %s: shadow %t\n", role, collection, settings.Shadow(role))

			return saveScene(logger, c, scenePath, out)
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "Scene file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Rig collection, e.g. Cube_Lights")
	cmd.Flags().StringVarP(&roleName, "role", "r", "key", "Light role (key, fill, back)")
	cmd.Flags().BoolVar(&off, "off", false, "Disable shadows instead of enabling them")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output scene file (defaults to --scene)")
	_ = cmd.MarkFlagRequired("scene")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}
