// Package player is the solving session: a loaded puzzle, the player's
// guesses and the view state.
package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dyluth/xw3d/internal/evaluate"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

// ErrNoSuchWord is returned when a guess targets a word that does not exist.
var ErrNoSuchWord = errors.New("no such word")

// Game is one solving session. Methods return a new Game and leave the
// receiver untouched.
type Game struct {
	Puzzle    crossword.Puzzle
	Guesses   []string
	Selection lattice.Selection
	Orbit     lattice.Coord
}

// NewGame starts solving p with every guess blank.
func NewGame(p crossword.Puzzle) Game {
	guesses := make([]string, len(p.Words))
	for i, w := range p.Words {
		guesses[i] = strings.Repeat(string(lattice.Blank), w.Len())
	}
	return Game{
		Puzzle:    p.Clone(),
		Guesses:   guesses,
		Selection: lattice.NoSelection,
		Orbit:     lattice.Origin,
	}
}

func (g Game) check(i int) error {
	if !g.Puzzle.HasWord(i) {
		return fmt.Errorf("%w: index %d (puzzle has %d words)", ErrNoSuchWord, i, len(g.Puzzle.Words))
	}
	return nil
}

func (g Game) withGuess(i int, text string) Game {
	guesses := make([]string, len(g.Guesses))
	copy(guesses, g.Guesses)
	guesses[i] = text
	g.Guesses = guesses
	return g
}

// SetGuess replaces the guess for word i and selects it. The text is
// upper-cased and may only hold letters and blanks; its length is not
// forced to match the answer.
func (g Game) SetGuess(i int, text string) (Game, error) {
	if err := g.check(i); err != nil {
		return g, err
	}
	guess, err := crossword.CleanText(text)
	if err != nil {
		return g, err
	}
	g = g.withGuess(i, guess)
	g.Selection = lattice.Select(i)
	return g, nil
}

// ClearGuess blanks the guess for word i.
func (g Game) ClearGuess(i int) (Game, error) {
	if err := g.check(i); err != nil {
		return g, err
	}
	return g.withGuess(i, strings.Repeat(string(lattice.Blank), g.Puzzle.Words[i].Len())), nil
}

// Select changes the active word.
func (g Game) Select(sel lattice.Selection) (Game, error) {
	if i, ok := sel.Index(); ok {
		if err := g.check(i); err != nil {
			return g, err
		}
	}
	g.Selection = sel
	return g, nil
}

// SetOrbit recenters the view.
func (g Game) SetOrbit(c lattice.Coord) Game {
	g.Orbit = c
	return g
}

// Evaluate layers the guesses over the blanked answer occupancy and
// reports per-word validity and whether the puzzle is solved.
func (g Game) Evaluate(em lattice.Emphasis) (lattice.Occupancy, evaluate.Report) {
	answers := lattice.Reconcile(g.Puzzle.Placements(), lattice.NoSelection, em)
	occ := lattice.ReconcileGuesses(lattice.Background(answers), g.Puzzle.GuessPlacements(g.Guesses), g.Selection, em)
	return occ, evaluate.Solving(g.Puzzle, g.Guesses, occ)
}

// Solved reports whether every guess matches its answer.
func (g Game) Solved() bool {
	return evaluate.Solved(g.Puzzle, g.Guesses)
}
