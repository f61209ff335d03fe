package scene

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dyluth/xw3d/pkg/lattice"
)

// Mode says which session produced a frame.
type Mode string

const (
	// ModeAuthoring frames carry answer letters and the save flag
	ModeAuthoring Mode = "authoring"

	// ModeSolving frames carry guess letters and the solved flag
	ModeSolving Mode = "solving"
)

// Validate checks if the mode is one of the defined values.
func (m Mode) Validate() error {
	switch m {
	case ModeAuthoring, ModeSolving:
		return nil
	default:
		return fmt.Errorf("invalid mode: %s", m)
	}
}

// CellView is one occupied lattice coordinate as the renderer sees it.
type CellView struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Z        int     `json:"z"`
	Letter   string  `json:"letter"`   // one character: a letter, " " for blank, "?" for a conflict
	Emphasis float64 `json:"emphasis"` // render weight, 0..1
	Words    []int   `json:"words"`    // indices of contributing words
}

// Coord returns the cell's lattice coordinate.
func (c CellView) Coord() lattice.Coord {
	return lattice.Coord{X: c.X, Y: c.Y, Z: c.Z}
}

// WordView is the validity of one word.
type WordView struct {
	Index   int      `json:"index"`
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
}

// Frame is a complete picture of a session after one transition.
type Frame struct {
	ID          string     `json:"id"`         // UUID of this frame
	SessionID   string     `json:"session_id"` // session that produced it
	Seq         int64      `json:"seq"`        // assigned on publish, increasing per session
	Mode        Mode       `json:"mode"`
	Name        string     `json:"name"`
	Cells       []CellView `json:"cells"`
	Words       []WordView `json:"words"`
	AllowSave   bool       `json:"allow_save"`
	Solved      bool       `json:"solved"`
	Selection   int        `json:"selection"` // -1 when nothing is selected
	Orbit       [3]int     `json:"orbit"`
	CreatedAtMs int64      `json:"created_at_ms"`
}

// Validate checks that the frame is well-formed.
func (f *Frame) Validate() error {
	if _, err := uuid.Parse(f.ID); err != nil {
		return fmt.Errorf("invalid frame ID: %w", err)
	}
	if f.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if err := f.Mode.Validate(); err != nil {
		return err
	}
	if f.Selection < -1 || f.Selection >= len(f.Words) {
		return fmt.Errorf("selection %d out of range (%d words)", f.Selection, len(f.Words))
	}
	for i, c := range f.Cells {
		if len([]rune(c.Letter)) != 1 {
			return fmt.Errorf("cell %d at %s: letter must be one character, got %q", i, c.Coord(), c.Letter)
		}
	}
	return nil
}

// OrbitCoord returns the orbit as a lattice coordinate.
func (f *Frame) OrbitCoord() lattice.Coord {
	return lattice.Coord{X: f.Orbit[0], Y: f.Orbit[1], Z: f.Orbit[2]}
}

// BuildFrame turns a reconciled occupancy and per-word validity into a new
// frame. Cells are listed in layer reading order. Callers fill in the
// flags, selection and orbit.
func BuildFrame(session string, mode Mode, name string, occ lattice.Occupancy, words []WordView) *Frame {
	cells := make([]CellView, 0, len(occ))
	for _, c := range occ.Coords() {
		cell := occ[c]
		contributors := make([]int, len(cell.Words))
		copy(contributors, cell.Words)
		cells = append(cells, CellView{
			X:        c.X,
			Y:        c.Y,
			Z:        c.Z,
			Letter:   string(cell.Letter),
			Emphasis: cell.Emphasis,
			Words:    contributors,
		})
	}

	if words == nil {
		words = []WordView{}
	}

	return &Frame{
		ID:          uuid.New().String(),
		SessionID:   session,
		Mode:        mode,
		Name:        name,
		Cells:       cells,
		Words:       words,
		Selection:   int(lattice.NoSelection),
		CreatedAtMs: time.Now().UnixMilli(),
	}
}

// WithView sets the selection and orbit.
func (f *Frame) WithView(sel lattice.Selection, orbit lattice.Coord) *Frame {
	f.Selection = int(sel)
	f.Orbit = [3]int{orbit.X, orbit.Y, orbit.Z}
	return f
}
