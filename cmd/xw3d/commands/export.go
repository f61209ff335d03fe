package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/pkg/crossword"
)

var (
	exportDir string
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Re-serialize a puzzle as NAME.json",
	Long: `Load a puzzle and write it back out as NAME.json, where NAME is the
puzzle's name, with the JSON normalized.

Examples:
  xw3d export downloads/puzzle.json --out puzzles/`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", ".", "Directory to write NAME.json into")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPuzzle(cfg, args[0])
	if err != nil {
		return err
	}

	path, err := crossword.WriteFile(exportDir, p)
	if err != nil {
		if errors.Is(err, crossword.ErrUnsafeName) {
			return printer.ErrorWithContext(
				"cannot export puzzle",
				"The puzzle's name cannot be used as a file name.",
				map[string]string{"Name": p.Name},
				[]string{"Rename it in an authoring session, then save:\n  xw3d author " + args[0]},
			)
		}
		return printer.Error("export failed", err.Error(), []string{"Check that the output directory exists and is writable"})
	}

	printer.Success("Exported %s\n", path)
	return nil
}
