package editor

import (
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

// Action is a request to transition the authoring session. The set of
// actions is closed; Reduce rejects anything else.
type Action interface {
	action() string
}

// NewWord appends a word and selects it.
type NewWord struct {
	Word crossword.Word
}

// DeleteWord removes the word at Index and clears the selection.
type DeleteWord struct {
	Index int
}

// ChangeStart moves the word at Index.
type ChangeStart struct {
	Index int
	Start lattice.Coord
}

// ChangeDirection turns the word at Index onto Axis.
type ChangeDirection struct {
	Index int
	Axis  lattice.Axis
}

// ChangeWord replaces the letters of the word at Index.
type ChangeWord struct {
	Index int
	Text  string
}

// ChangeDescription replaces the clue of the word at Index and selects it.
type ChangeDescription struct {
	Index int
	Text  string
}

// ChangeName renames the puzzle.
type ChangeName struct {
	Name string
}

// Drag moves the word at Index live, without touching history.
type Drag struct {
	Index int
	Start lattice.Coord
}

// DragEnd releases the current drag as a single move.
type DragEnd struct{}

// Select changes the active word. Use lattice.NoSelection to clear it.
type Select struct {
	Selection lattice.Selection
}

// SetOrbit recenters the view on Orbit.
type SetOrbit struct {
	Orbit lattice.Coord
}

// Undo steps back one entry.
type Undo struct{}

// Redo steps forward one entry.
type Redo struct{}

// Load replaces the puzzle and starts a fresh history.
type Load struct {
	Puzzle crossword.Puzzle
}

func (NewWord) action() string           { return "new_word" }
func (DeleteWord) action() string        { return "delete_word" }
func (ChangeStart) action() string       { return "change_start" }
func (ChangeDirection) action() string   { return "change_direction" }
func (ChangeWord) action() string        { return "change_word" }
func (ChangeDescription) action() string { return "change_description" }
func (ChangeName) action() string        { return "change_name" }
func (Drag) action() string              { return "drag" }
func (DragEnd) action() string           { return "drag_end" }
func (Select) action() string            { return "select" }
func (SetOrbit) action() string          { return "set_orbit" }
func (Undo) action() string              { return "undo" }
func (Redo) action() string              { return "redo" }
func (Load) action() string              { return "load" }

// Name returns the snake_case name of an action, for logs.
func Name(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.action()
}
