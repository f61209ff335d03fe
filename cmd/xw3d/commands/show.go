package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyluth/xw3d/internal/editor"
	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/internal/render"
	"github.com/dyluth/xw3d/pkg/lattice"
	"github.com/dyluth/xw3d/pkg/scene"
)

var (
	showLayer        int
	showOutputFormat string
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Render a puzzle's lattice",
	Long: `Render the reconciled lattice of a puzzle file.

Output Formats:
  default - One grid per z layer, y descending, x left to right
            ('.' empty, '_' blank letter, '?' conflict)
  jsonl   - Line-delimited JSON, one block per line, as sent to the renderer

Examples:
  # All layers
  xw3d show cube.json

  # Only the z=2 layer
  xw3d show cube.json --layer 2

  # Blocks as JSONL for piping to jq
  xw3d show cube.json --output=jsonl | jq 'select(.letter=="E")'`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVar(&showLayer, "layer", 0, "Only render this z layer")
	showCmd.Flags().StringVarP(&showOutputFormat, "output", "o", "default", "Output format (default or jsonl)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if showOutputFormat != "default" && showOutputFormat != "jsonl" {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", showOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPuzzle(cfg, args[0])
	if err != nil {
		return err
	}

	occ, report := editor.FromPuzzle(p).Evaluate(cfg.Emphasis())

	if showOutputFormat == "jsonl" {
		frame := render.Frame("show", scene.ModeAuthoring, p, occ, report, lattice.NoSelection, lattice.Origin)
		return render.FormatJSONL(printer.Out, frame.Cells)
	}

	var layer *int
	if cmd.Flags().Changed("layer") {
		layer = &showLayer
	}
	if render.FormatLayers(printer.Out, occ, layer) == 0 && layer != nil {
		return printer.Error(
			"layer not found",
			fmt.Sprintf("Puzzle '%s' has no blocks at z=%d", p.Name, showLayer),
			[]string{fmt.Sprintf("Show every layer:\n  xw3d show %s", args[0])},
		)
	}
	return nil
}
