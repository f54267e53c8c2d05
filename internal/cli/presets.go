package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gekko3d/lightrig"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#414868"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

// newPresetsCommand creates "presets", listing the built-in presets.
func newPresetsCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in light presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(borderStyle).
				Headers("KEY", "LABEL", "BASE W", "KEY LIGHT", "FILL LIGHT", "BACK LIGHT")

			for _, p := range lightrig.Presets() {
				key := p.Key
				if key == opts.Config.Preset {
					key += " *"
				}
				t.Row(
					key,
					p.Label,
					fmt.Sprintf("%g", p.BaseEnergy),
					swatch(p.Light(lightrig.KeyLight).Color),
					swatch(p.Light(lightrig.FillLight).Color),
					swatch(p.Light(lightrig.BackLight).Color),
				)
			}

			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("Light presets"))
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("* default preset"))
			return nil
		},
	}
}

func swatch(c [3]float32) string {
	hex := formatColor(c)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■ " + hex)
}
