package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gekko3d/lightrig"
)

// newPreviewCommand creates "preview", rendering a top-down PNG of a rig.
func newPreviewCommand(opts *Options) *cobra.Command {
	var (
		scenePath  string
		collection string
		pngPath    string
		size       int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a top-down PNG sketch of a rig",
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
			img, err := lightrig.RenderPreview(c, info, size)
			if err != nil {
				return err
			}

			f, err := os.Create(pngPath)
			if err != nil {
				return err
			}
			if err := lightrig.WritePreviewPNG(f, img); err != nil {
				_ = f.Close()
				return fmt.Errorf("write %s: %w", pngPath, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			logger.Info("preview written", "path", pngPath, "size", size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "Scene file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Rig collection, e.g. Cube_Lights")
	cmd.Flags().StringVar(&pngPath, "png", "preview.png", "Output PNG path")
	cmd.Flags().IntVar(&size, "size", opts.Config.PreviewSize, "Image edge in pixels")
	_ = cmd.MarkFlagRequired("scene")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}
