package editor

import (
	"fmt"

	"github.com/dyluth/xw3d/internal/history"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

// Reduce returns the state that results from applying a to s. On error the
// returned state is s, unchanged.
//
// Structural edits record exactly one history entry. An edit that leaves
// the puzzle as it was records nothing. Any action other than Drag and
// DragEnd first commits a drag in progress.
func Reduce(s State, a Action) (State, error) {
	next, err := reduce(s, a)
	if err != nil {
		return s, err
	}
	return next, nil
}

func reduce(s State, a Action) (State, error) {
	if s.Drag != nil {
		commit := true
		switch a := a.(type) {
		case Drag:
			commit = a.Index != s.Drag.Index
		case DragEnd, Load:
			commit = false
		}
		if commit {
			var err error
			if s, err = commitDrag(s); err != nil {
				return s, err
			}
		}
	}

	switch a := a.(type) {
	case NewWord:
		return newWord(s, a)
	case DeleteWord:
		return deleteWord(s, a)
	case ChangeStart:
		if err := s.checkIndex(a.Index); err != nil {
			return s, err
		}
		old := s.Puzzle.Words[a.Index].Start
		if old == a.Start {
			return s, nil
		}
		return s.edit(history.ChangeStart(a.Index, old, a.Start), s.Selection, s.Orbit)

	case ChangeDirection:
		if err := s.checkIndex(a.Index); err != nil {
			return s, err
		}
		if err := a.Axis.Validate(); err != nil {
			return s, err
		}
		old := s.Puzzle.Words[a.Index].Axis
		if old == a.Axis {
			return s, nil
		}
		return s.edit(history.ChangeDirection(a.Index, old, a.Axis), s.Selection, s.Orbit)

	case ChangeWord:
		if err := s.checkIndex(a.Index); err != nil {
			return s, err
		}
		old := s.Puzzle.Words[a.Index].Text
		text, err := crossword.CleanText(a.Text)
		if err != nil {
			return s, err
		}
		if old == text {
			return s, nil
		}
		return s.edit(history.ChangeWord(a.Index, old, text), s.Selection, s.Orbit)

	case ChangeDescription:
		if err := s.checkIndex(a.Index); err != nil {
			return s, err
		}
		old := s.Puzzle.Words[a.Index].Description
		if old == a.Text {
			return s, nil
		}
		return s.edit(history.ChangeDescription(a.Index, old, a.Text), lattice.Select(a.Index), s.Orbit)

	case ChangeName:
		if s.Puzzle.Name == a.Name {
			return s, nil
		}
		return s.edit(history.ChangeName(s.Puzzle.Name, a.Name), s.Selection, s.Orbit)

	case Drag:
		return drag(s, a)
	case DragEnd:
		if s.Drag == nil {
			return s, nil
		}
		return commitDrag(s)

	case Select:
		if i, ok := a.Selection.Index(); ok {
			if err := s.checkIndex(i); err != nil {
				return s, err
			}
		}
		return s.view(a.Selection, s.Orbit), nil
	case SetOrbit:
		return s.view(s.Selection, a.Orbit), nil

	case Undo:
		return undo(s)
	case Redo:
		return redo(s)
	case Load:
		return FromPuzzle(a.Puzzle), nil

	case nil:
		return s, fmt.Errorf("nil action")
	default:
		return s, fmt.Errorf("unknown action: %T", a)
	}
}

func (s State) checkIndex(i int) error {
	if !s.Puzzle.HasWord(i) {
		return noSuchWord(i, s.Puzzle)
	}
	return nil
}

// edit applies d to the working puzzle and records it with the post-edit
// view.
func (s State) edit(d history.Delta, sel lattice.Selection, orbit lattice.Coord) (State, error) {
	words, err := d.Apply(s.Puzzle.Words)
	if err != nil {
		return s, fmt.Errorf("failed to apply %s: %w", d.Kind, err)
	}

	name := s.Puzzle.Name
	if d.Kind == history.KindChangeName {
		name = d.NewText
	}

	log, err := s.Log.Record(history.NewEntry(name, &d, sel, orbit))
	if err != nil {
		return s, err
	}

	return State{
		Puzzle:    crossword.Puzzle{Name: name, Words: words},
		Selection: sel,
		Orbit:     orbit,
		Log:       log,
	}, nil
}

// view changes selection and orbit and stores them on the current entry.
func (s State) view(sel lattice.Selection, orbit lattice.Coord) State {
	s.Selection = sel
	s.Orbit = orbit
	s.Log = s.Log.WithView(sel, orbit)
	return s
}

func newWord(s State, a NewWord) (State, error) {
	w := a.Word
	text, err := crossword.CleanText(w.Text)
	if err != nil {
		return s, err
	}
	w.Text = text
	if err := w.Axis.Validate(); err != nil {
		return s, err
	}
	return s.edit(history.NewWord(w), lattice.Select(len(s.Puzzle.Words)), s.Orbit)
}

func deleteWord(s State, a DeleteWord) (State, error) {
	if err := s.checkIndex(a.Index); err != nil {
		return s, err
	}

	removed := s.Puzzle.Words[a.Index]
	d := history.DeleteWord(a.Index, removed)

	orbit := s.Orbit
	if removed.Covers(orbit) {
		remaining, err := d.Apply(s.Puzzle.Words)
		if err != nil {
			return s, err
		}
		if !(crossword.Puzzle{Words: remaining}).Covering(orbit) {
			orbit = lattice.Origin
		}
	}

	return s.edit(d, lattice.NoSelection, orbit)
}

func drag(s State, a Drag) (State, error) {
	if err := s.checkIndex(a.Index); err != nil {
		return s, err
	}

	ds := s.Drag
	if ds == nil {
		ds = &DragState{Index: a.Index, Origin: s.Puzzle.Words[a.Index].Start}
	}

	p := s.Puzzle.Clone()
	p.Words[a.Index].Start = a.Start
	s.Puzzle = p
	s.Drag = ds
	return s, nil
}

// commitDrag records a drag as one change_start from its origin. A drag
// that ends where it began records nothing.
func commitDrag(s State) (State, error) {
	ds := s.Drag
	s.Drag = nil

	final := s.Puzzle.Words[ds.Index].Start
	if final == ds.Origin {
		return s, nil
	}

	d := history.ChangeStart(ds.Index, ds.Origin, final)
	log, err := s.Log.Record(history.NewEntry(s.Puzzle.Name, &d, s.Selection, s.Orbit))
	if err != nil {
		return s, fmt.Errorf("failed to commit drag: %w", err)
	}
	s.Log = log
	return s, nil
}

func undo(s State) (State, error) {
	step, ok, err := s.Log.Undo(s.Puzzle.Words)
	if err != nil {
		return s, err
	}
	if !ok {
		return s, nil
	}
	return adopt(step), nil
}

func redo(s State) (State, error) {
	step, ok, err := s.Log.Redo(s.Puzzle.Words)
	if err != nil {
		return s, err
	}
	if !ok {
		return s, nil
	}
	return adopt(step), nil
}

func adopt(step history.Step) State {
	return State{
		Puzzle:    crossword.Puzzle{Name: step.Entry.Name, Words: step.Words},
		Selection: step.Entry.Selection,
		Orbit:     step.Entry.Orbit,
		Log:       step.Log,
	}
}
