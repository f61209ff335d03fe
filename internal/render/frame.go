package render

import (
	"github.com/dyluth/xw3d/internal/evaluate"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
	"github.com/dyluth/xw3d/pkg/scene"
)

// SceneWords converts an evaluation report into frame word views.
func SceneWords(report evaluate.Report) []scene.WordView {
	out := make([]scene.WordView, len(report.Words))
	for i, w := range report.Words {
		view := scene.WordView{Index: w.Index, Valid: w.Valid}
		for _, r := range w.Reasons {
			view.Reasons = append(view.Reasons, string(r))
		}
		out[i] = view
	}
	return out
}

// Frame assembles a complete scene frame for one session snapshot.
func Frame(session string, mode scene.Mode, p crossword.Puzzle, occ lattice.Occupancy, report evaluate.Report, sel lattice.Selection, orbit lattice.Coord) *scene.Frame {
	f := scene.BuildFrame(session, mode, p.Name, occ, SceneWords(report))
	f.AllowSave = report.AllowSave
	f.Solved = report.Solved
	return f.WithView(sel, orbit)
}
