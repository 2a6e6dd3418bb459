package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mastviz/mastfig/pkg/canvas"
)

// presetsCommand creates the command that lists canvas presets.
func (c *CLI) presetsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the canvas presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := canvas.Presets()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(presets)
			}
			printPresets(presets)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print presets as JSON")

	return cmd
}

// printPresets prints one line per preset; aliases name their target.
func printPresets(presets []canvas.PresetInfo) {
	fmt.Println(StyleTitle.Render("Canvas presets"))
	nameStyle := lipgloss.NewStyle().Foreground(colorCyan).Width(10)
	sizeStyle := lipgloss.NewStyle().Foreground(colorWhite).Width(11)
	for _, p := range presets {
		size := fmt.Sprintf("%gx%g", p.Width, p.Height)
		desc := p.Description
		if p.AliasOf != "" {
			desc = "alias of " + p.AliasOf
		}
		fmt.Println("  " + nameStyle.Render(p.Name) + sizeStyle.Render(size) + StyleDim.Render(desc))
	}
}
