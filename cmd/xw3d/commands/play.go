package commands

import (
	"github.com/spf13/cobra"

	"github.com/dyluth/xw3d/internal/player"
	"github.com/dyluth/xw3d/internal/printer"
)

var (
	playFlags sessionFlags
)

var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Solve a puzzle",
	Long: `Start a solving session for a puzzle file.

Every answer starts blank. Commands are read one per line from --script or
stdin; after each one the invalid guesses are listed, and "solved" is
printed once every guess matches its answer.

Commands:
  guess I TEXT      set the guess for word I ('_' leaves a letter blank)
  clear I           blank the guess for word I
  select I|none | orbit X Y Z | show

Examples:
  xw3d play cube.json
  xw3d play cube.json --script answers.txt --publish`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playFlags.script, "script", "s", "", "Read commands from this file instead of stdin")
	playCmd.Flags().BoolVarP(&playFlags.publish, "publish", "p", false, "Publish a frame to the scene feed after every command")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPuzzle(cfg, args[0])
	if err != nil {
		return err
	}
	printer.Step("Solving '%s' (%d words)\n", p.Name, len(p.Words))

	ctx, cancel := signalContext()
	defer cancel()

	input, err := playFlags.openInput()
	if err != nil {
		return err
	}
	defer input.Close()

	rn, closeScene, err := playFlags.newRunner(ctx, cfg, "")
	if err != nil {
		return err
	}
	defer closeScene()

	game, err := rn.Play(ctx, input, player.NewGame(p))
	if err != nil {
		return scriptFailure(playFlags.script, err)
	}
	if game.Solved() {
		printer.Success("Solved '%s'\n", p.Name)
	}
	return nil
}
