// Package evaluate computes per-word validity and puzzle completion from a
// reconciled lattice.
package evaluate

import (
	"fmt"
	"strings"

	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

// Reason explains why a word is invalid.
type Reason string

const (
	// ReasonEmptyDescription means the word has no clue
	ReasonEmptyDescription Reason = "empty_description"

	// ReasonEmptyWord means the word has no letters
	ReasonEmptyWord Reason = "empty_word"

	// ReasonBlankLetter means the word (or guess) still contains a placeholder
	ReasonBlankLetter Reason = "blank_letter"

	// ReasonInvalidLetter means the word holds a character other than A-Z
	// or a blank, as a file loaded without the alphabet check can
	ReasonInvalidLetter Reason = "invalid_letter"

	// ReasonConflict means a letter of the word clashes with another word
	ReasonConflict Reason = "conflict"

	// ReasonLengthMismatch means the guess is not as long as the answer
	ReasonLengthMismatch Reason = "length_mismatch"
)

// WordStatus is the validity of one word.
type WordStatus struct {
	Index   int      `json:"index"`
	Valid   bool     `json:"valid"`
	Reasons []Reason `json:"reasons,omitempty"`
}

// Report summarises an evaluation. AllowSave is only meaningful in
// authoring mode and Solved only in solving mode.
type Report struct {
	Words     []WordStatus `json:"words"`
	AllowSave bool         `json:"allow_save"`
	Solved    bool         `json:"solved"`
}

// AllValid reports whether every word is valid.
func (r Report) AllValid() bool {
	for _, w := range r.Words {
		if !w.Valid {
			return false
		}
	}
	return true
}

// Invalid returns the indices of every invalid word.
func (r Report) Invalid() []int {
	var out []int
	for _, w := range r.Words {
		if !w.Valid {
			out = append(out, w.Index)
		}
	}
	return out
}

// Blocker explains why an authoring report of p does not allow saving.
// It returns "" when saving is allowed.
func (r Report) Blocker(p crossword.Puzzle) string {
	switch {
	case r.AllowSave:
		return ""
	case p.Name == "":
		return "the puzzle has no name"
	case len(p.Words) == 0:
		return "the puzzle has no words"
	default:
		return fmt.Sprintf("invalid words %v", r.Invalid())
	}
}

func status(index int, reasons []Reason) WordStatus {
	return WordStatus{Index: index, Valid: len(reasons) == 0, Reasons: reasons}
}

// Authoring evaluates the puzzle being edited against its own occupancy.
func Authoring(p crossword.Puzzle, occ lattice.Occupancy) Report {
	r := Report{Words: make([]WordStatus, 0, len(p.Words))}

	for i, w := range p.Words {
		var reasons []Reason
		if w.Description == "" {
			reasons = append(reasons, ReasonEmptyDescription)
		}
		if w.Text == "" {
			reasons = append(reasons, ReasonEmptyWord)
		}
		if w.HasBlank() {
			reasons = append(reasons, ReasonBlankLetter)
		}
		if w.HasInvalidLetter() {
			reasons = append(reasons, ReasonInvalidLetter)
		}
		if occ.Conflicted(i) {
			reasons = append(reasons, ReasonConflict)
		}
		r.Words = append(r.Words, status(i, reasons))
	}

	r.AllowSave = r.AllValid() && p.Name != "" && len(p.Words) > 0
	return r
}

// Solving evaluates guesses against the puzzle. occ must be the guess
// occupancy layered over the answer background.
func Solving(p crossword.Puzzle, guesses []string, occ lattice.Occupancy) Report {
	r := Report{Words: make([]WordStatus, 0, len(p.Words))}

	for i, w := range p.Words {
		guess := ""
		if i < len(guesses) {
			guess = guesses[i]
		}

		var reasons []Reason
		if len([]rune(guess)) != w.Len() {
			reasons = append(reasons, ReasonLengthMismatch)
		}
		if strings.ContainsRune(guess, lattice.Blank) {
			reasons = append(reasons, ReasonBlankLetter)
		}
		if occ.Conflicted(i) {
			reasons = append(reasons, ReasonConflict)
		}
		r.Words = append(r.Words, status(i, reasons))
	}

	r.Solved = Solved(p, guesses)
	return r
}

// Solved reports whether every guess equals its answer exactly. The
// lattice plays no part. A puzzle without words is solved.
func Solved(p crossword.Puzzle, guesses []string) bool {
	if len(guesses) != len(p.Words) {
		return false
	}
	for i, w := range p.Words {
		if guesses[i] != w.Text {
			return false
		}
	}
	return true
}
