package script

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dyluth/xw3d/internal/editor"
	"github.com/dyluth/xw3d/internal/evaluate"
	"github.com/dyluth/xw3d/internal/player"
	"github.com/dyluth/xw3d/internal/render"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
	"github.com/dyluth/xw3d/pkg/scene"
)

// Publisher receives a frame after every successful command.
type Publisher interface {
	PublishFrame(ctx context.Context, f *scene.Frame) error
}

// Runner executes commands against a session and reports after each one.
type Runner struct {
	Out       io.Writer // reports and command output
	Emphasis  lattice.Emphasis
	SaveDir   string    // where "save" writes NAME.json
	Strict    bool      // stop at the first failing command
	Publisher Publisher // optional
	Session   string    // scene session ID, required with Publisher
}

// Author runs commands from r against an authoring session starting at
// s, and returns the final state. In strict mode the first failing
// command stops the run and its error is returned.
func (rn *Runner) Author(ctx context.Context, r io.Reader, s editor.State) (editor.State, error) {
	err := rn.each(ctx, r, func(cmd Command) error {
		next, err := rn.author(cmd, s)
		if err != nil {
			return err
		}
		s = next
		occ, report := s.Evaluate(rn.Emphasis)
		rn.status(report, false)
		return rn.publish(ctx, render.Frame(rn.Session, scene.ModeAuthoring, s.Puzzle, occ, report, s.Selection, s.Orbit))
	})
	return s, err
}

// Play runs commands from r against a solving session.
func (rn *Runner) Play(ctx context.Context, r io.Reader, g player.Game) (player.Game, error) {
	err := rn.each(ctx, r, func(cmd Command) error {
		next, err := rn.play(cmd, g)
		if err != nil {
			return err
		}
		g = next
		occ, report := g.Evaluate(rn.Emphasis)
		rn.status(report, true)
		return rn.publish(ctx, render.Frame(rn.Session, scene.ModeSolving, g.Puzzle, occ, report, g.Selection, g.Orbit))
	})
	return g, err
}

func (rn *Runner) each(ctx context.Context, r io.Reader, apply func(Command) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++

		cmd, ok, err := Parse(lineNo, scanner.Text())
		if err == nil && ok {
			err = apply(cmd)
			if err != nil {
				err = fmt.Errorf("line %d: %s: %w", lineNo, cmd.Verb, err)
			}
		}
		if err != nil {
			logEvent("command_failed", map[string]interface{}{
				"line":  lineNo,
				"error": err.Error(),
			})
			if rn.Strict {
				return err
			}
			fmt.Fprintf(rn.Out, "error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}

func (rn *Runner) author(cmd Command, s editor.State) (editor.State, error) {
	var a editor.Action

	switch cmd.Verb {
	case VerbNew:
		text := crossword.NormalizeText(cmd.Text)
		start := lattice.StartFromCenter(s.Orbit, cmd.Axis, len([]rune(text)))
		a = editor.NewWord{Word: crossword.Word{Text: text, Axis: cmd.Axis, Start: start, Description: cmd.Clue}}
	case VerbPlace:
		a = editor.NewWord{Word: crossword.Word{Text: cmd.Text, Axis: cmd.Axis, Start: cmd.Coord, Description: cmd.Clue}}
	case VerbDelete:
		a = editor.DeleteWord{Index: cmd.Index}
	case VerbStart:
		a = editor.ChangeStart{Index: cmd.Index, Start: cmd.Coord}
	case VerbAxis:
		a = editor.ChangeDirection{Index: cmd.Index, Axis: cmd.Axis}
	case VerbWord:
		a = editor.ChangeWord{Index: cmd.Index, Text: cmd.Text}
	case VerbDesc:
		a = editor.ChangeDescription{Index: cmd.Index, Text: cmd.Clue}
	case VerbName:
		a = editor.ChangeName{Name: cmd.Text}
	case VerbDrag:
		a = editor.Drag{Index: cmd.Index, Start: cmd.Coord}
	case VerbDrop:
		a = editor.DragEnd{}
	case VerbUndo:
		a = editor.Undo{}
	case VerbRedo:
		a = editor.Redo{}
	case VerbSelect:
		a = editor.Select{Selection: cmd.Sel}
	case VerbOrbit:
		a = editor.SetOrbit{Orbit: cmd.Coord}

	case VerbSave:
		return s, rn.save(s)
	case VerbShow:
		occ, report := s.Evaluate(rn.Emphasis)
		render.FormatWords(rn.Out, s.Puzzle, report, s.Selection)
		fmt.Fprintln(rn.Out)
		render.FormatLayers(rn.Out, occ, nil)
		return s, nil
	case VerbHistory:
		render.FormatHistory(rn.Out, s.Log)
		return s, nil

	default:
		return s, fmt.Errorf("%q is not available while authoring", cmd.Verb)
	}

	return editor.Reduce(s, a)
}

func (rn *Runner) play(cmd Command, g player.Game) (player.Game, error) {
	switch cmd.Verb {
	case VerbGuess:
		return g.SetGuess(cmd.Index, cmd.Text)
	case VerbClear:
		return g.ClearGuess(cmd.Index)
	case VerbSelect:
		return g.Select(cmd.Sel)
	case VerbOrbit:
		return g.SetOrbit(cmd.Coord), nil
	case VerbShow:
		occ, report := g.Evaluate(rn.Emphasis)
		render.FormatGuesses(rn.Out, g.Puzzle, g.Guesses, report, g.Selection)
		fmt.Fprintln(rn.Out)
		render.FormatLayers(rn.Out, occ, nil)
		return g, nil
	default:
		return g, fmt.Errorf("%q is not available while solving", cmd.Verb)
	}
}

// save exports the puzzle when the authoring report allows it. A puzzle
// that cannot be saved is reported, not treated as an error.
func (rn *Runner) save(s editor.State) error {
	_, report := s.Evaluate(rn.Emphasis)
	if !report.AllowSave {
		fmt.Fprintf(rn.Out, "save disabled: %s\n", report.Blocker(s.Puzzle))
		return nil
	}

	path, err := crossword.WriteFile(rn.SaveDir, s.Puzzle)
	if err != nil {
		return err
	}
	fmt.Fprintf(rn.Out, "saved %s\n", path)
	return nil
}

// status prints the one-line summary after a command.
func (rn *Runner) status(report evaluate.Report, solving bool) {
	invalid := report.Invalid()
	line := fmt.Sprintf("%d words", len(report.Words))
	if len(invalid) > 0 {
		line += fmt.Sprintf(", invalid %v", invalid)
	}
	if solving {
		if report.Solved {
			line += ", solved"
		}
	} else if report.AllowSave {
		line += ", save enabled"
	} else {
		line += ", save disabled"
	}
	fmt.Fprintln(rn.Out, line)
}

func (rn *Runner) publish(ctx context.Context, f *scene.Frame) error {
	if rn.Publisher == nil {
		return nil
	}
	if err := rn.Publisher.PublishFrame(ctx, f); err != nil {
		return fmt.Errorf("failed to publish frame: %w", err)
	}
	return nil
}

// logEvent writes a structured JSON log line.
func logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "script"
	data["event_type"] = eventType

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Script] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
