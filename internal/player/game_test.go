package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/xw3d/internal/evaluate"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

func greetings() crossword.Puzzle {
	return crossword.Puzzle{
		Name: "greetings",
		Words: []crossword.Word{
			{Text: "HELLO", Axis: lattice.AxisX, Start: lattice.Origin, Description: "A greeting"},
			{Text: "OXXXX", Axis: lattice.AxisY, Start: lattice.Coord{X: 4}, Description: "Kisses"},
		},
	}
}

func TestNewGame(t *testing.T) {
	g := NewGame(greetings())

	assert.Equal(t, []string{"     ", "     "}, g.Guesses)
	assert.Equal(t, lattice.NoSelection, g.Selection)
	assert.False(t, g.Solved())

	occ, report := g.Evaluate(lattice.DefaultEmphasis)
	assert.Len(t, occ, 9)
	for _, cell := range occ {
		assert.Equal(t, lattice.Blank, cell.Letter)
	}
	assert.Equal(t, []int{0, 1}, report.Invalid())
}

func TestGame_SolveFlow(t *testing.T) {
	g := NewGame(greetings())

	g, err := g.SetGuess(0, "hello")
	require.NoError(t, err)
	assert.Equal(t, lattice.Select(0), g.Selection)
	assert.Equal(t, "HELLO", g.Guesses[0])

	occ, report := g.Evaluate(lattice.DefaultEmphasis)
	assert.True(t, report.Words[0].Valid)
	assert.Equal(t, 'O', occ[lattice.Coord{X: 4}].Letter)
	assert.Equal(t, lattice.Blank, occ[lattice.Coord{X: 4, Y: -1}].Letter)
	assert.False(t, report.Solved)

	g, err = g.SetGuess(1, "OXXXX")
	require.NoError(t, err)
	_, report = g.Evaluate(lattice.DefaultEmphasis)
	assert.True(t, report.AllValid())
	assert.True(t, report.Solved)
	assert.True(t, g.Solved())
}

func TestGame_ConflictingGuesses(t *testing.T) {
	g := NewGame(greetings())
	g, _ = g.SetGuess(0, "HELLO")
	g, _ = g.SetGuess(1, "AXXXX")

	occ, report := g.Evaluate(lattice.DefaultEmphasis)
	assert.Equal(t, lattice.Conflict, occ[lattice.Coord{X: 4}].Letter)
	assert.Contains(t, report.Words[0].Reasons, evaluate.ReasonConflict)
	assert.Contains(t, report.Words[1].Reasons, evaluate.ReasonConflict)
	assert.False(t, report.Solved)
}

func TestGame_LongGuessDoesNotGrowLattice(t *testing.T) {
	g := NewGame(greetings())
	g, _ = g.SetGuess(0, "HELLOWORLD")

	occ, report := g.Evaluate(lattice.DefaultEmphasis)
	assert.Len(t, occ, 9)
	assert.Equal(t, []evaluate.Reason{evaluate.ReasonLengthMismatch}, report.Words[0].Reasons)
}

func TestGame_ClearGuess(t *testing.T) {
	g := NewGame(greetings())
	g, _ = g.SetGuess(1, "OXXXX")

	cleared, err := g.ClearGuess(1)
	require.NoError(t, err)
	assert.Equal(t, "     ", cleared.Guesses[1])
	assert.Equal(t, "OXXXX", g.Guesses[1], "receiver must be untouched")
}

func TestGame_BadIndex(t *testing.T) {
	g := NewGame(greetings())

	_, err := g.SetGuess(2, "X")
	assert.True(t, errors.Is(err, ErrNoSuchWord))
	_, err = g.ClearGuess(-1)
	assert.True(t, errors.Is(err, ErrNoSuchWord))
	_, err = g.Select(lattice.Select(5))
	assert.True(t, errors.Is(err, ErrNoSuchWord))

	g, err = g.Select(lattice.NoSelection)
	require.NoError(t, err)
	assert.Equal(t, lattice.Coord{Z: 2}, g.SetOrbit(lattice.Coord{Z: 2}).Orbit)
}

func TestGame_GuessRejectsNonLetters(t *testing.T) {
	g, err := NewGame(greetings()).SetGuess(0, "hel_o")
	require.NoError(t, err)
	assert.Equal(t, "HEL O", g.Guesses[0])

	for _, text := range []string{"HELL0", "HE?LO", "hello!"} {
		next, err := g.SetGuess(0, text)
		assert.ErrorIs(t, err, crossword.ErrInvalidLetter, text)
		assert.Equal(t, g, next)
	}
}

func TestGame_EmptyPuzzleIsSolved(t *testing.T) {
	g := NewGame(crossword.Puzzle{Name: "empty"})
	assert.True(t, g.Solved())
	_, report := g.Evaluate(lattice.DefaultEmphasis)
	assert.True(t, report.Solved)
}
