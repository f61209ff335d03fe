package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/xw3d/internal/config"
	"github.com/dyluth/xw3d/internal/editor"
	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/internal/render"
	"github.com/dyluth/xw3d/internal/watch"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

var (
	checkWatch    bool
	checkDebounce time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a puzzle file",
	Long: `Load a puzzle file with the configured policy and report on it.

A file that cannot be loaded is reported as one of:
  Couldn't open the file - the file could not be read
  Invalid file           - not a puzzle, or a word breaks the load policy
  Invalid crossword      - two words disagree on a shared block

A loaded puzzle is listed word by word with its validity and whether it
could be saved.

Examples:
  # Check once
  xw3d check cube.json

  # Re-check every time the file changes
  xw3d check cube.json --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check whenever the file changes")
	checkCmd.Flags().DurationVar(&checkDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a change is re-checked")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := args[0]

	if !checkWatch {
		return checkOnce(cfg, path)
	}

	ctx, cancel := signalContext()
	defer cancel()

	w, err := watch.NewFileWatcher(path, checkDebounce, func(string) {
		printer.Println()
		printer.Step("%s changed, re-checking\n", path)
		// Failures are already reported; keep watching.
		_ = checkOnce(cfg, path)
	})
	if err != nil {
		return printer.Error("cannot watch file", err.Error(), []string{"Check that the directory exists"})
	}
	defer w.Close()

	_ = checkOnce(cfg, path)
	printer.Info("\nWatching %s (Ctrl+C to stop)\n", w.Path())
	return w.Run(ctx)
}

func checkOnce(cfg *config.Config, path string) error {
	p, err := loadPuzzle(cfg, path)
	if err != nil {
		return err
	}

	_, report := editor.FromPuzzle(p).Evaluate(cfg.Emphasis())
	render.FormatWords(printer.Out, p, report, lattice.NoSelection)
	printer.Println()

	if report.AllowSave {
		printer.Success("%s is valid and would export as %s\n", path, crossword.FileName(p))
		return nil
	}
	printer.Warning("%s loads, but save is disabled: %s\n", path, report.Blocker(p))
	return nil
}
