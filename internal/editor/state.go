// Package editor is the authoring session: the working puzzle, the view
// state (selection and orbit) and the edit history, advanced by a pure
// reducer.
package editor

import (
	"errors"
	"fmt"

	"github.com/dyluth/xw3d/internal/evaluate"
	"github.com/dyluth/xw3d/internal/history"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

// ErrNoSuchWord is returned when an action names a word index that does
// not exist.
var ErrNoSuchWord = errors.New("no such word")

func noSuchWord(i int, p crossword.Puzzle) error {
	return fmt.Errorf("%w: index %d (puzzle has %d words)", ErrNoSuchWord, i, len(p.Words))
}

// IsNoSuchWord checks if an error is an ErrNoSuchWord.
func IsNoSuchWord(err error) bool {
	return errors.Is(err, ErrNoSuchWord)
}

// DragState tracks a word being dragged.
type DragState struct {
	Index  int
	Origin lattice.Coord // start before the first drag step
}

// State is one snapshot of an authoring session. States are values:
// Reduce never modifies the state it is given.
type State struct {
	Puzzle    crossword.Puzzle
	Selection lattice.Selection
	Orbit     lattice.Coord
	Log       history.Log
	Drag      *DragState
}

// New starts an empty puzzle.
func New(name string) State {
	return FromPuzzle(crossword.Puzzle{Name: name})
}

// FromPuzzle starts a session on p with a single history entry.
func FromPuzzle(p crossword.Puzzle) State {
	return State{
		Puzzle:    p.Clone(),
		Selection: lattice.NoSelection,
		Orbit:     lattice.Origin,
		Log:       history.NewLog(p.Name),
	}
}

// Dragging reports whether a drag is in progress.
func (s State) Dragging() bool {
	return s.Drag != nil
}

// Evaluate reconciles the working puzzle and reports its authoring
// validity.
func (s State) Evaluate(em lattice.Emphasis) (lattice.Occupancy, evaluate.Report) {
	occ := lattice.Reconcile(s.Puzzle.Placements(), s.Selection, em)
	return occ, evaluate.Authoring(s.Puzzle, occ)
}
