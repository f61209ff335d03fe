package lattice

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a point on the integer lattice. It is comparable and is used
// directly as a map key.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Origin is the lattice point (0,0,0).
var Origin = Coord{}

// Add returns the component-wise sum of c and o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Scale returns c multiplied by k.
func (c Coord) Scale(k int) Coord {
	return Coord{X: c.X * k, Y: c.Y * k, Z: c.Z * k}
}

// String renders the coordinate as "x,y,z".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// Array returns the coordinate as the [x, y, z] triple used by puzzle files.
func (c Coord) Array() []int {
	return []int{c.X, c.Y, c.Z}
}

// ParseCoord parses the "x,y,z" form produced by String.
func ParseCoord(s string) (Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Coord{}, fmt.Errorf("invalid coordinate %q: expected x,y,z", s)
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Coord{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
		v[i] = n
	}

	return Coord{X: v[0], Y: v[1], Z: v[2]}, nil
}

// CoordFromArray converts a [x, y, z] slice into a Coord.
func CoordFromArray(a []int) (Coord, error) {
	if len(a) != 3 {
		return Coord{}, fmt.Errorf("coordinate must have 3 components, got %d", len(a))
	}
	return Coord{X: a[0], Y: a[1], Z: a[2]}, nil
}

// Axis is the direction a word's letters advance along.
type Axis string

const (
	// AxisX advances by (+1, 0, 0)
	AxisX Axis = "X"

	// AxisY advances by (0, -1, 0)
	AxisY Axis = "Y"

	// AxisZ advances by (0, 0, +1)
	AxisZ Axis = "Z"
)

// Axes lists every axis in declaration order.
var Axes = []Axis{AxisX, AxisY, AxisZ}

// Validate checks if the Axis is a valid enum value.
func (a Axis) Validate() error {
	switch a {
	case AxisX, AxisY, AxisZ:
		return nil
	default:
		return fmt.Errorf("unknown axis: %q", a)
	}
}

// ParseAxis accepts an axis name in either case.
func ParseAxis(s string) (Axis, error) {
	a := Axis(strings.ToUpper(strings.TrimSpace(s)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Step returns the unit vector of the axis. Unknown axes step nowhere.
func (a Axis) Step() Coord {
	switch a {
	case AxisX:
		return Coord{X: 1}
	case AxisY:
		return Coord{Y: -1}
	case AxisZ:
		return Coord{Z: 1}
	default:
		return Coord{}
	}
}

// LetterPosition returns the coordinate of letter index of a word that
// starts at start and runs along axis. Negative indices walk backwards.
func LetterPosition(start Coord, axis Axis, index int) Coord {
	return start.Add(axis.Step().Scale(index))
}

// StartFromCenter derives the start of a word of the given length whose
// middle letter sits on center.
func StartFromCenter(center Coord, axis Axis, length int) Coord {
	return LetterPosition(center, axis, -(length / 2))
}

// Span returns the coordinates of every letter of a word, in order.
func Span(start Coord, axis Axis, length int) []Coord {
	out := make([]Coord, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, LetterPosition(start, axis, i))
	}
	return out
}

// Covers reports whether a word of the given length occupies c.
func Covers(start Coord, axis Axis, length int, c Coord) bool {
	for i := 0; i < length; i++ {
		if LetterPosition(start, axis, i) == c {
			return true
		}
	}
	return false
}
