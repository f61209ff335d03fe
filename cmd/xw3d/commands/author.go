package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dyluth/xw3d/internal/editor"
	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/internal/script"
)

var (
	authorFlags sessionFlags
	authorOut   string
)

var authorCmd = &cobra.Command{
	Use:   "author [FILE]",
	Short: "Build or edit a puzzle",
	Long: `Start an authoring session, empty or from an existing puzzle file.

Commands are read one per line from --script or stdin. After each command
the word count, any invalid words and whether the puzzle could be saved
are printed. "save" writes NAME.json into --out once every word is valid
and the puzzle has a name.

Commands:
  new AXIS WORD [DESCRIPTION...]         add a word centered on the orbit
  place AXIS X Y Z WORD [DESCRIPTION...] add a word starting at X Y Z
  delete I | start I X Y Z | axis I AXIS | word I TEXT | desc I TEXT...
  name NAME...
  drag I X Y Z, drop                     move a word, recorded once on drop
  undo | redo | history
  select I|none | orbit X Y Z
  save | show

Examples:
  # Interactive
  xw3d author

  # Replay a script against an existing puzzle, publishing every step
  xw3d author cube.json --script edits.txt --out puzzles/ --publish`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthor,
}

func init() {
	authorCmd.Flags().StringVarP(&authorFlags.script, "script", "s", "", "Read commands from this file instead of stdin")
	authorCmd.Flags().BoolVarP(&authorFlags.publish, "publish", "p", false, "Publish a frame to the scene feed after every command")
	authorCmd.Flags().StringVar(&authorOut, "out", ".", "Directory 'save' writes NAME.json into")
	rootCmd.AddCommand(authorCmd)
}

func runAuthor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state := editor.New("")
	if len(args) == 1 {
		p, err := loadPuzzle(cfg, args[0])
		if err != nil {
			return err
		}
		state = editor.FromPuzzle(p)
		printer.Step("Editing '%s' (%d words)\n", p.Name, len(p.Words))
	}

	ctx, cancel := signalContext()
	defer cancel()

	input, err := authorFlags.openInput()
	if err != nil {
		return err
	}
	defer input.Close()

	rn, closeScene, err := authorFlags.newRunner(ctx, cfg, authorOut)
	if err != nil {
		return err
	}
	defer closeScene()

	if _, err := rn.Author(ctx, input, state); err != nil {
		return scriptFailure(authorFlags.script, err)
	}
	return nil
}

// scriptFailure reports the command that stopped a session.
func scriptFailure(path string, err error) error {
	// Ctrl+C ends a session normally.
	if errors.Is(err, context.Canceled) {
		return nil
	}
	context := map[string]string{}
	if path != "" {
		context["Script"] = path
	}
	suggestions := []string{"Fix the command and run the script again"}
	if script.IsParseError(err) {
		suggestions = []string{"Run 'xw3d author --help' for the command list"}
	}
	return printer.ErrorWithContext("session stopped", err.Error(), context, suggestions)
}
