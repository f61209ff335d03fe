package lattice

import "sort"

const (
	// Blank is the placeholder letter. It never conflicts with anything.
	Blank rune = ' '

	// Conflict marks a coordinate where two words place different letters.
	Conflict rune = '?'
)

// Selection identifies the active word by index, or NoSelection.
type Selection int

// NoSelection means no word is active.
const NoSelection Selection = -1

// Select returns the selection for word index i.
func Select(i int) Selection {
	if i < 0 {
		return NoSelection
	}
	return Selection(i)
}

// Index returns the selected word index and whether anything is selected.
func (s Selection) Index() (int, bool) {
	if s < 0 {
		return 0, false
	}
	return int(s), true
}

// Emphasis holds the render weights a cell can take on. It is carried
// through reconciliation for the renderer and never affects letters.
type Emphasis struct {
	Active   float64 `json:"active"`   // a selected word, or any word when nothing is selected
	Inactive float64 `json:"inactive"` // words other than the selected one
}

// DefaultEmphasis dims unselected words to roughly a third.
var DefaultEmphasis = Emphasis{Active: 1.0, Inactive: 0.35}

func (e Emphasis) weight(sel Selection, index int) float64 {
	if i, ok := sel.Index(); !ok || i == index {
		return e.Active
	}
	return e.Inactive
}

// Placement is one word laid on the lattice: the text to place, where it
// starts and which way it runs. Index identifies the word for conflict
// attribution.
type Placement struct {
	Index int
	Text  string
	Axis  Axis
	Start Coord
}

// Cell is the reconciled state of one lattice coordinate.
type Cell struct {
	Letter   rune    // resolved letter, Blank, or Conflict
	Words    []int   // indices of every word that placed a letter here
	Emphasis float64 // highest emphasis among contributors
}

// Occupancy maps every occupied coordinate to its reconciled cell.
type Occupancy map[Coord]*Cell

// Reconcile folds placements, in order, into a fresh occupancy.
func Reconcile(placements []Placement, sel Selection, em Emphasis) Occupancy {
	occ := make(Occupancy)
	for _, p := range placements {
		occ.place(p, sel, em, false)
	}
	return occ
}

// Background returns a copy of answers with every letter blanked and no
// contributors. It is the base layer guesses are folded onto.
func Background(answers Occupancy) Occupancy {
	bg := make(Occupancy, len(answers))
	for c := range answers {
		bg[c] = &Cell{Letter: Blank, Words: []int{}}
	}
	return bg
}

// ReconcileGuesses folds guesses onto a copy of background. Guess letters
// landing outside the background are dropped.
func ReconcileGuesses(background Occupancy, guesses []Placement, sel Selection, em Emphasis) Occupancy {
	occ := background.Clone()
	for _, p := range guesses {
		occ.place(p, sel, em, true)
	}
	return occ
}

func (o Occupancy) place(p Placement, sel Selection, em Emphasis, onlyExisting bool) {
	weight := em.weight(sel, p.Index)

	for i, ch := range []rune(p.Text) {
		c := LetterPosition(p.Start, p.Axis, i)

		cell, ok := o[c]
		if !ok {
			if onlyExisting {
				continue
			}
			cell = &Cell{Letter: ch}
			o[c] = cell
		} else {
			switch {
			case cell.Letter == Conflict:
				// sticky
			case cell.Letter == Blank && ch != Blank:
				cell.Letter = ch
			case ch == Blank || ch == cell.Letter:
			default:
				cell.Letter = Conflict
			}
		}

		cell.Words = append(cell.Words, p.Index)
		if weight > cell.Emphasis {
			cell.Emphasis = weight
		}
	}
}

// Clone returns a deep copy of the occupancy.
func (o Occupancy) Clone() Occupancy {
	out := make(Occupancy, len(o))
	for c, cell := range o {
		words := make([]int, len(cell.Words))
		copy(words, cell.Words)
		out[c] = &Cell{Letter: cell.Letter, Words: words, Emphasis: cell.Emphasis}
	}
	return out
}

// Conflicted reports whether any cell word index contributed to holds the
// conflict marker.
func (o Occupancy) Conflicted(index int) bool {
	for _, cell := range o {
		if cell.Letter != Conflict {
			continue
		}
		for _, w := range cell.Words {
			if w == index {
				return true
			}
		}
	}
	return false
}

// Conflicts returns every conflicted coordinate, sorted.
func (o Occupancy) Conflicts() []Coord {
	var out []Coord
	for c, cell := range o {
		if cell.Letter == Conflict {
			out = append(out, c)
		}
	}
	SortCoords(out)
	return out
}

// Letters flattens the occupancy to its resolved letters.
func (o Occupancy) Letters() map[Coord]rune {
	out := make(map[Coord]rune, len(o))
	for c, cell := range o {
		out[c] = cell.Letter
	}
	return out
}

// Coords returns every occupied coordinate, sorted.
func (o Occupancy) Coords() []Coord {
	out := make([]Coord, 0, len(o))
	for c := range o {
		out = append(out, c)
	}
	SortCoords(out)
	return out
}

// Bounds returns the minimum and maximum corners of the occupied region.
// ok is false when the occupancy is empty.
func (o Occupancy) Bounds() (lo, hi Coord, ok bool) {
	for c := range o {
		if !ok {
			lo, hi, ok = c, c, true
			continue
		}
		lo = Coord{X: min(lo.X, c.X), Y: min(lo.Y, c.Y), Z: min(lo.Z, c.Z)}
		hi = Coord{X: max(hi.X, c.X), Y: max(hi.Y, c.Y), Z: max(hi.Z, c.Z)}
	}
	return lo, hi, ok
}

// SortCoords orders coordinates by z, then descending y, then x, which is
// the reading order of a layer printed top to bottom.
func SortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		return a.X < b.X
	})
}
