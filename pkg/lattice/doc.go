// Package lattice implements the geometry and letter reconciliation of a
// three-dimensional crossword.
//
// # Overview
//
// Words are runs of letter blocks laid along one of three axes on an
// unbounded integer lattice. Several words may share a coordinate, so the
// letters every word places must be folded into one coherent view of the
// lattice before anything can be validated or drawn.
//
// # Geometry
//
// A word is anchored by its start coordinate and an Axis. Letter i of the
// word sits at start + i*step, where the steps are:
//
//	X -> (+1,  0,  0)
//	Y -> ( 0, -1,  0)
//	Z -> ( 0,  0, +1)
//
// Y deliberately decreases. Negative indices are allowed, which is how a
// start is derived from a clicked centre block:
//
//	start := lattice.StartFromCenter(center, lattice.AxisX, len(text))
//
// # Reconciliation
//
// Reconcile folds placements into an Occupancy, a map from Coord to Cell.
// Placements are processed in index order and every letter applies these
// rules to the cell at its coordinate:
//
//   - no cell yet: create one holding the letter (a blank is a valid occupant)
//   - cell holds a blank, letter is concrete: the letter takes the cell
//   - letter is blank, or equals the stored letter: nothing changes
//   - otherwise: the cell becomes the conflict marker '?' and stays that way
//
// Whatever the branch, the word index is recorded as a contributor and the
// cell emphasis is raised to the emphasis implied by the current selection.
// Letter resolution does not depend on processing order; only the order of
// contributors and the emphasis do.
//
// # Solving
//
// In solving mode the puzzle's own words produce the background (every
// answer cell, blanked) and the player's guesses are folded on top of it
// with the same rules:
//
//	answers := lattice.Reconcile(placements, lattice.NoSelection, emphasis)
//	occ := lattice.ReconcileGuesses(lattice.Background(answers), guesses, sel, emphasis)
//
// A guess can only fill coordinates that the answers occupy.
package lattice
