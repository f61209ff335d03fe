// Package script drives authoring and solving sessions from line
// commands, read from a terminal or a script file.
//
// Each line is one command: a verb followed by space-separated arguments.
// Blank lines and lines starting with "#" are skipped. In word and guess
// text an underscore stands for a blank letter.
//
//	new AXIS WORD [DESCRIPTION...]         add a word centered on the orbit
//	place AXIS X Y Z WORD [DESCRIPTION...] add a word starting at X Y Z
//	delete I                               delete word I
//	start I X Y Z                          move word I
//	axis I AXIS                            turn word I
//	word I TEXT                            replace the letters of word I
//	desc I DESCRIPTION...                  replace the clue of word I
//	name NAME...                           rename the puzzle
//	drag I X Y Z                           drag word I (no history until drop)
//	drop                                   release the drag
//	undo, redo                             step through history
//	select I|none                          change the active word
//	orbit X Y Z                            recenter the view
//	guess I TEXT                           set the guess for word I
//	clear I                                blank the guess for word I
//	save                                   export NAME.json when allowed
//	show                                   print words and lattice layers
//	history                                list history entries
package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dyluth/xw3d/pkg/lattice"
)

// Verb names a command.
type Verb string

const (
	VerbNew     Verb = "new"
	VerbPlace   Verb = "place"
	VerbDelete  Verb = "delete"
	VerbStart   Verb = "start"
	VerbAxis    Verb = "axis"
	VerbWord    Verb = "word"
	VerbDesc    Verb = "desc"
	VerbName    Verb = "name"
	VerbDrag    Verb = "drag"
	VerbDrop    Verb = "drop"
	VerbUndo    Verb = "undo"
	VerbRedo    Verb = "redo"
	VerbSelect  Verb = "select"
	VerbOrbit   Verb = "orbit"
	VerbGuess   Verb = "guess"
	VerbClear   Verb = "clear"
	VerbSave    Verb = "save"
	VerbShow    Verb = "show"
	VerbHistory Verb = "history"
)

// Command is one parsed line. Only the fields the verb uses are set.
type Command struct {
	Line  int
	Verb  Verb
	Index int
	Axis  lattice.Axis
	Coord lattice.Coord
	Text  string
	Clue  string
	Sel   lattice.Selection
}

// ParseError reports a line that could not be parsed.
type ParseError struct {
	Line   int
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Input)
}

// IsParseError checks if an error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Parse parses one line. ok is false for blank and comment lines.
func Parse(lineNo int, line string) (cmd Command, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, false, nil
	}

	fields := strings.Fields(trimmed)
	p := parser{line: lineNo, input: trimmed, args: fields[1:]}
	cmd = Command{Line: lineNo, Verb: Verb(strings.ToLower(fields[0])), Sel: lattice.NoSelection}

	switch cmd.Verb {
	case VerbNew:
		p.want(2, -1)
		cmd.Axis = p.axis(0)
		cmd.Text = p.arg(1)
		cmd.Clue = p.rest(2)

	case VerbPlace:
		p.want(5, -1)
		cmd.Axis = p.axis(0)
		cmd.Coord = p.coord(1)
		cmd.Text = p.arg(4)
		cmd.Clue = p.rest(5)

	case VerbDelete, VerbClear:
		p.want(1, 1)
		cmd.Index = p.index(0)

	case VerbStart, VerbDrag:
		p.want(4, 4)
		cmd.Index = p.index(0)
		cmd.Coord = p.coord(1)

	case VerbAxis:
		p.want(2, 2)
		cmd.Index = p.index(0)
		cmd.Axis = p.axis(1)

	case VerbWord, VerbGuess:
		p.want(2, 2)
		cmd.Index = p.index(0)
		cmd.Text = p.arg(1)

	case VerbDesc:
		p.want(1, -1)
		cmd.Index = p.index(0)
		cmd.Clue = p.rest(1)

	case VerbName:
		p.want(1, -1)
		cmd.Text = p.rest(0)

	case VerbOrbit:
		p.want(3, 3)
		cmd.Coord = p.coord(0)

	case VerbSelect:
		p.want(1, 1)
		if strings.EqualFold(p.arg(0), "none") {
			cmd.Sel = lattice.NoSelection
		} else {
			cmd.Sel = lattice.Select(p.index(0))
		}

	case VerbDrop, VerbUndo, VerbRedo, VerbSave, VerbShow, VerbHistory:
		p.want(0, 0)

	default:
		return Command{}, false, &ParseError{Line: lineNo, Input: trimmed, Reason: fmt.Sprintf("unknown command %q", fields[0])}
	}

	if p.err != nil {
		return Command{}, false, p.err
	}
	return cmd, true, nil
}

// parser accumulates the first argument error so each verb can read its
// arguments without checking after every one.
type parser struct {
	line  int
	input string
	args  []string
	err   *ParseError
}

func (p *parser) fail(format string, a ...any) {
	if p.err == nil {
		p.err = &ParseError{Line: p.line, Input: p.input, Reason: fmt.Sprintf(format, a...)}
	}
}

// want checks the argument count; hi < 0 means unbounded.
func (p *parser) want(lo, hi int) {
	n := len(p.args)
	switch {
	case hi < 0 && n < lo:
		p.fail("expected at least %d arguments, got %d", lo, n)
	case hi >= 0 && (n < lo || n > hi):
		if lo == hi {
			p.fail("expected %d arguments, got %d", lo, n)
		} else {
			p.fail("expected %d to %d arguments, got %d", lo, hi, n)
		}
	}
}

func (p *parser) arg(i int) string {
	if i >= len(p.args) {
		return ""
	}
	return p.args[i]
}

func (p *parser) rest(i int) string {
	if i >= len(p.args) {
		return ""
	}
	return strings.Join(p.args[i:], " ")
}

func (p *parser) integer(i int) int {
	s := p.arg(i)
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail("%q is not an integer", s)
	}
	return v
}

func (p *parser) index(i int) int {
	v := p.integer(i)
	if v < 0 {
		p.fail("word index %d is negative", v)
	}
	return v
}

func (p *parser) coord(i int) lattice.Coord {
	return lattice.Coord{X: p.integer(i), Y: p.integer(i + 1), Z: p.integer(i + 2)}
}

func (p *parser) axis(i int) lattice.Axis {
	a, err := lattice.ParseAxis(p.arg(i))
	if err != nil {
		p.fail("%v", err)
	}
	return a
}
