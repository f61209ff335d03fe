// Package crossword defines the authored puzzle model and its JSON file
// format.
//
// A Puzzle is a name plus an ordered list of Words. Word order only gives
// each word a stable index for conflict attribution and UI identity; it
// carries no priority.
package crossword

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dyluth/xw3d/pkg/lattice"
)

// Word is one authored run of letter blocks.
type Word struct {
	Text        string        // uppercase letters; a space is a blank placeholder
	Axis        lattice.Axis  // direction the letters advance along
	Start       lattice.Coord // coordinate of the first letter
	Description string        // clue shown to the player
}

// Len returns the number of letters in the word.
func (w Word) Len() int {
	return len([]rune(w.Text))
}

// HasBlank reports whether the word still contains a placeholder.
func (w Word) HasBlank() bool {
	return strings.ContainsRune(w.Text, lattice.Blank)
}

// Covers reports whether any letter of the word sits on c.
func (w Word) Covers(c lattice.Coord) bool {
	return lattice.Covers(w.Start, w.Axis, w.Len(), c)
}

// Cells returns the coordinates of the word's letters, in order.
func (w Word) Cells() []lattice.Coord {
	return lattice.Span(w.Start, w.Axis, w.Len())
}

// Puzzle is a named, ordered collection of words.
type Puzzle struct {
	Name  string
	Words []Word
}

// Clone returns a copy whose word slice can be modified independently.
func (p Puzzle) Clone() Puzzle {
	words := make([]Word, len(p.Words))
	copy(words, p.Words)
	return Puzzle{Name: p.Name, Words: words}
}

// Placements lays every word on the lattice using its own text.
func (p Puzzle) Placements() []lattice.Placement {
	out := make([]lattice.Placement, len(p.Words))
	for i, w := range p.Words {
		out[i] = lattice.Placement{Index: i, Text: w.Text, Axis: w.Axis, Start: w.Start}
	}
	return out
}

// GuessPlacements lays guesses on the puzzle's geometry. Missing guesses
// place nothing.
func (p Puzzle) GuessPlacements(guesses []string) []lattice.Placement {
	out := make([]lattice.Placement, 0, len(p.Words))
	for i, w := range p.Words {
		text := ""
		if i < len(guesses) {
			text = guesses[i]
		}
		out = append(out, lattice.Placement{Index: i, Text: text, Axis: w.Axis, Start: w.Start})
	}
	return out
}

// HasWord reports whether i indexes a word.
func (p Puzzle) HasWord(i int) bool {
	return i >= 0 && i < len(p.Words)
}

// Covering reports whether any word covers c.
func (p Puzzle) Covering(c lattice.Coord) bool {
	for _, w := range p.Words {
		if w.Covers(c) {
			return true
		}
	}
	return false
}

// ErrInvalidLetter is returned for text holding a character other than
// A-Z or the blank placeholder.
var ErrInvalidLetter = errors.New("word text may only hold letters A-Z and blanks")

// IsLetter reports whether r may appear in word or guess text.
func IsLetter(r rune) bool {
	return r == lattice.Blank || (r >= 'A' && r <= 'Z')
}

// HasInvalidLetter reports whether the word holds a character IsLetter
// rejects.
func (w Word) HasInvalidLetter() bool {
	return strings.IndexFunc(w.Text, func(r rune) bool { return !IsLetter(r) }) >= 0
}

// CleanText normalizes s and rejects it if any character is not a letter.
func CleanText(s string) (string, error) {
	text := NormalizeText(s)
	for _, r := range text {
		if !IsLetter(r) {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidLetter, s, r)
		}
	}
	return text, nil
}

// NormalizeText upper-cases authored or guessed text. Underscores are
// accepted as an alternative spelling of the blank placeholder.
func NormalizeText(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "_", string(lattice.Blank)))
}
