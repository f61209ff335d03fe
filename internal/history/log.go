package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

// Entry is one point in the history: the edit that led here plus the view
// state to restore when the cursor lands on it.
type Entry struct {
	ID        uuid.UUID
	Name      string
	Delta     *Delta // nil for the initial entry
	Selection lattice.Selection
	Orbit     lattice.Coord
	CreatedAt time.Time
}

// NewEntry builds an entry for delta with a fresh ID.
func NewEntry(name string, delta *Delta, sel lattice.Selection, orbit lattice.Coord) Entry {
	return Entry{
		ID:        uuid.New(),
		Name:      name,
		Delta:     delta,
		Selection: sel,
		Orbit:     orbit,
		CreatedAt: time.Now(),
	}
}

// Describe returns a short label for listings.
func (e Entry) Describe() string {
	if e.Delta == nil {
		return fmt.Sprintf("open %q", e.Name)
	}
	return e.Delta.String()
}

// Log is an append-only, truncate-on-branch list of entries plus a cursor.
// Entries after the cursor are the redoable future, entries before it the
// undoable past. A Log is a value: every method returns a new Log and
// leaves the receiver untouched.
type Log struct {
	entries []Entry
	cursor  int
}

// NewLog starts a history for a puzzle named name: one initial entry with
// nothing selected and the orbit at the origin.
func NewLog(name string) Log {
	return NewLogAt(NewEntry(name, nil, lattice.NoSelection, lattice.Origin))
}

// NewLogAt starts a history from a given initial entry. Its delta is
// ignored.
func NewLogAt(initial Entry) Log {
	initial.Delta = nil
	return Log{entries: []Entry{initial}}
}

// Len returns the number of entries.
func (l Log) Len() int {
	return len(l.entries)
}

// Cursor returns the index of the current entry.
func (l Log) Cursor() int {
	return l.cursor
}

// Entries returns a copy of every entry.
func (l Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Current returns the entry under the cursor.
func (l Log) Current() Entry {
	return l.entries[l.cursor]
}

// CanUndo reports whether the cursor can move back.
func (l Log) CanUndo() bool {
	return l.cursor > 0
}

// CanRedo reports whether the cursor can move forward.
func (l Log) CanRedo() bool {
	return l.cursor < len(l.entries)-1
}

// Record drops the redoable future, appends e and moves the cursor onto it.
func (l Log) Record(e Entry) (Log, error) {
	if e.Delta == nil {
		return l, fmt.Errorf("cannot record an entry without a delta")
	}
	if err := e.Delta.Validate(); err != nil {
		return l, fmt.Errorf("failed to record entry: %w", err)
	}

	entries := make([]Entry, l.cursor+1, l.cursor+2)
	copy(entries, l.entries[:l.cursor+1])
	entries = append(entries, e)

	return Log{entries: entries, cursor: l.cursor + 1}, nil
}

// WithView returns a log whose current entry carries sel and orbit.
func (l Log) WithView(sel lattice.Selection, orbit lattice.Coord) Log {
	entries := l.Entries()
	entries[l.cursor].Selection = sel
	entries[l.cursor].Orbit = orbit
	return Log{entries: entries, cursor: l.cursor}
}

// Step is the outcome of an undo or redo: the transformed word list, the
// entry whose name and view should be adopted, and the moved log.
type Step struct {
	Words []crossword.Word
	Entry Entry
	Log   Log
}

// Undo reverts the delta of the current entry on words and moves the
// cursor back one entry. At the first entry it returns ok=false and no
// error.
func (l Log) Undo(words []crossword.Word) (Step, bool, error) {
	if !l.CanUndo() {
		return Step{}, false, nil
	}

	delta := l.entries[l.cursor].Delta
	reverted, err := delta.Revert(words)
	if err != nil {
		return Step{}, false, fmt.Errorf("failed to undo %s: %w", delta.Kind, err)
	}

	moved := Log{entries: l.entries, cursor: l.cursor - 1}
	return Step{Words: reverted, Entry: moved.Current(), Log: moved}, true, nil
}

// Redo applies the delta of the next entry on words and moves the cursor
// onto it. At the last entry it returns ok=false and no error.
func (l Log) Redo(words []crossword.Word) (Step, bool, error) {
	if !l.CanRedo() {
		return Step{}, false, nil
	}

	delta := l.entries[l.cursor+1].Delta
	applied, err := delta.Apply(words)
	if err != nil {
		return Step{}, false, fmt.Errorf("failed to redo %s: %w", delta.Kind, err)
	}

	moved := Log{entries: l.entries, cursor: l.cursor + 1}
	return Step{Words: applied, Entry: moved.Current(), Log: moved}, true, nil
}
