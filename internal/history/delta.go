// Package history implements the authoring undo/redo log.
//
// The log stores one Delta per structural edit instead of whole word-list
// snapshots. Every delta kind has a hand-written forward (Apply) and
// inverse (Revert) transformation; the two must stay exactly symmetric or
// the log silently corrupts the puzzle, so each kind is tested in both
// directions.
package history

import (
	"fmt"

	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

// DeltaKind identifies which edit a Delta records.
type DeltaKind string

const (
	KindNewWord           DeltaKind = "new_word"
	KindDeleteWord        DeltaKind = "delete_word"
	KindChangeStart       DeltaKind = "change_start"
	KindChangeDirection   DeltaKind = "change_direction"
	KindChangeWord        DeltaKind = "change_word"
	KindChangeDescription DeltaKind = "change_description"
	KindChangeName        DeltaKind = "change_name"
)

// Validate checks that the kind is one of the known edit kinds.
func (k DeltaKind) Validate() error {
	switch k {
	case KindNewWord, KindDeleteWord, KindChangeStart, KindChangeDirection,
		KindChangeWord, KindChangeDescription, KindChangeName:
		return nil
	default:
		return fmt.Errorf("invalid delta kind: %s", k)
	}
}

// Delta is the minimal reversal information for one structural edit.
// Only the fields relevant to Kind are set.
type Delta struct {
	Kind  DeltaKind
	Index int

	// new_word, delete_word
	Word crossword.Word

	// change_start
	OldStart lattice.Coord
	NewStart lattice.Coord

	// change_direction
	OldAxis lattice.Axis
	NewAxis lattice.Axis

	// change_word, change_description, change_name
	OldText string
	NewText string
}

// NewWord records appending w.
func NewWord(w crossword.Word) Delta {
	return Delta{Kind: KindNewWord, Word: w}
}

// DeleteWord records removing w from index.
func DeleteWord(index int, w crossword.Word) Delta {
	return Delta{Kind: KindDeleteWord, Index: index, Word: w}
}

// ChangeStart records moving the word at index.
func ChangeStart(index int, from, to lattice.Coord) Delta {
	return Delta{Kind: KindChangeStart, Index: index, OldStart: from, NewStart: to}
}

// ChangeDirection records turning the word at index onto another axis.
func ChangeDirection(index int, from, to lattice.Axis) Delta {
	return Delta{Kind: KindChangeDirection, Index: index, OldAxis: from, NewAxis: to}
}

// ChangeWord records replacing the text of the word at index.
func ChangeWord(index int, from, to string) Delta {
	return Delta{Kind: KindChangeWord, Index: index, OldText: from, NewText: to}
}

// ChangeDescription records replacing the clue of the word at index.
func ChangeDescription(index int, from, to string) Delta {
	return Delta{Kind: KindChangeDescription, Index: index, OldText: from, NewText: to}
}

// ChangeName records renaming the puzzle. The name itself is carried by
// log entries, so this delta leaves the word list alone.
func ChangeName(from, to string) Delta {
	return Delta{Kind: KindChangeName, OldText: from, NewText: to}
}

// Validate checks the kind and the fields it depends on.
func (d Delta) Validate() error {
	if err := d.Kind.Validate(); err != nil {
		return err
	}

	switch d.Kind {
	case KindNewWord, KindChangeName:
		// no index
	default:
		if d.Index < 0 {
			return fmt.Errorf("%s delta has negative index %d", d.Kind, d.Index)
		}
	}

	switch d.Kind {
	case KindNewWord, KindDeleteWord:
		if err := d.Word.Axis.Validate(); err != nil {
			return fmt.Errorf("%s delta: %w", d.Kind, err)
		}
	case KindChangeDirection:
		if err := d.OldAxis.Validate(); err != nil {
			return fmt.Errorf("change_direction delta old axis: %w", err)
		}
		if err := d.NewAxis.Validate(); err != nil {
			return fmt.Errorf("change_direction delta new axis: %w", err)
		}
	}

	return nil
}

// Apply performs the edit forward on words and returns a new slice. The
// input is never modified.
func (d Delta) Apply(words []crossword.Word) ([]crossword.Word, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	switch d.Kind {
	case KindNewWord:
		out := clone(words, 1)
		return append(out, d.Word), nil

	case KindDeleteWord:
		if err := d.inRange(words); err != nil {
			return nil, err
		}
		return remove(words, d.Index), nil

	case KindChangeName:
		return clone(words, 0), nil
	}

	if err := d.inRange(words); err != nil {
		return nil, err
	}
	out := clone(words, 0)
	d.set(&out[d.Index], false)
	return out, nil
}

// Revert undoes the edit on words and returns a new slice. words must be
// the list as it was right after Apply.
func (d Delta) Revert(words []crossword.Word) ([]crossword.Word, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	switch d.Kind {
	case KindNewWord:
		if len(words) == 0 {
			return nil, fmt.Errorf("cannot revert new_word on an empty word list")
		}
		return clone(words[:len(words)-1], 0), nil

	case KindDeleteWord:
		if d.Index > len(words) {
			return nil, fmt.Errorf("cannot reinsert word at %d into %d words", d.Index, len(words))
		}
		return insert(words, d.Index, d.Word), nil

	case KindChangeName:
		return clone(words, 0), nil
	}

	if err := d.inRange(words); err != nil {
		return nil, err
	}
	out := clone(words, 0)
	d.set(&out[d.Index], true)
	return out, nil
}

// set writes the new (or, when reverting, the old) field value into w.
func (d Delta) set(w *crossword.Word, revert bool) {
	switch d.Kind {
	case KindChangeStart:
		w.Start = pick(revert, d.OldStart, d.NewStart)
	case KindChangeDirection:
		w.Axis = pick(revert, d.OldAxis, d.NewAxis)
	case KindChangeWord:
		w.Text = pick(revert, d.OldText, d.NewText)
	case KindChangeDescription:
		w.Description = pick(revert, d.OldText, d.NewText)
	}
}

func pick[T any](revert bool, old, next T) T {
	if revert {
		return old
	}
	return next
}

func (d Delta) inRange(words []crossword.Word) error {
	if d.Index >= len(words) {
		return fmt.Errorf("%s delta index %d out of range (%d words)", d.Kind, d.Index, len(words))
	}
	return nil
}

// String renders the delta for history listings.
func (d Delta) String() string {
	switch d.Kind {
	case KindNewWord:
		return fmt.Sprintf("new word %q along %s at %s", d.Word.Text, d.Word.Axis, d.Word.Start)
	case KindDeleteWord:
		return fmt.Sprintf("delete word %d (%q)", d.Index, d.Word.Text)
	case KindChangeStart:
		return fmt.Sprintf("move word %d from %s to %s", d.Index, d.OldStart, d.NewStart)
	case KindChangeDirection:
		return fmt.Sprintf("turn word %d from %s to %s", d.Index, d.OldAxis, d.NewAxis)
	case KindChangeWord:
		return fmt.Sprintf("change word %d from %q to %q", d.Index, d.OldText, d.NewText)
	case KindChangeDescription:
		return fmt.Sprintf("change description of word %d to %q", d.Index, d.NewText)
	case KindChangeName:
		return fmt.Sprintf("rename puzzle from %q to %q", d.OldText, d.NewText)
	default:
		return string(d.Kind)
	}
}

func clone(words []crossword.Word, extra int) []crossword.Word {
	out := make([]crossword.Word, len(words), len(words)+extra)
	copy(out, words)
	return out
}

func remove(words []crossword.Word, i int) []crossword.Word {
	out := make([]crossword.Word, 0, len(words)-1)
	out = append(out, words[:i]...)
	return append(out, words[i+1:]...)
}

func insert(words []crossword.Word, i int, w crossword.Word) []crossword.Word {
	out := make([]crossword.Word, 0, len(words)+1)
	out = append(out, words[:i]...)
	out = append(out, w)
	return append(out, words[i:]...)
}
