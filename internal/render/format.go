// Package render formats puzzles, lattices, reports and frames for the
// terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dyluth/xw3d/internal/evaluate"
	"github.com/dyluth/xw3d/internal/history"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
	"github.com/dyluth/xw3d/pkg/scene"
)

// Cell glyphs used in layer output.
const (
	glyphEmpty    = '.'
	glyphBlank    = '_'
	glyphConflict = '?'
)

// FormatWords writes the puzzle's words as a table with their validity.
// The selected word is marked with ">". Returns the number of words
// formatted.
func FormatWords(w io.Writer, p crossword.Puzzle, report evaluate.Report, sel lattice.Selection) int {
	texts := make([]string, len(p.Words))
	for i, word := range p.Words {
		texts[i] = word.Text
	}
	return formatRows(w, p, texts, report, sel, "WORD")
}

// FormatGuesses writes the player's guesses against the puzzle geometry.
func FormatGuesses(w io.Writer, p crossword.Puzzle, guesses []string, report evaluate.Report, sel lattice.Selection) int {
	texts := make([]string, len(p.Words))
	copy(texts, guesses)
	return formatRows(w, p, texts, report, sel, "GUESS")
}

func formatRows(w io.Writer, p crossword.Puzzle, texts []string, report evaluate.Report, sel lattice.Selection, column string) int {
	if len(p.Words) == 0 {
		fmt.Fprintf(w, "No words in '%s'\n", p.Name)
		return 0
	}

	fmt.Fprintf(w, "Words in '%s':\n\n", p.Name)

	fmt.Fprintf(w, "  %-3s %-4s %-12s %-12s %-18s %s\n",
		"#", "AXIS", "START", column, "STATUS", "DESCRIPTION")
	fmt.Fprintf(w, "  %-3s %-4s %-12s %-12s %-18s %s\n",
		"---", "----", "------------", "------------", "------------------", "----------------------------------------")

	selected, hasSelection := sel.Index()
	for i, word := range p.Words {
		marker := " "
		if hasSelection && selected == i {
			marker = ">"
		}

		var status evaluate.WordStatus
		if i < len(report.Words) {
			status = report.Words[i]
		}

		fmt.Fprintf(w, "%s %-3d %-4s %-12s %-12s %-18s %s\n",
			marker,
			i,
			string(word.Axis),
			word.Start.String(),
			formatText(texts[i]),
			formatStatus(status),
			formatDescription(word.Description),
		)
	}

	countMsg := "word"
	if len(p.Words) != 1 {
		countMsg = "words"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(p.Words), countMsg)

	return len(p.Words)
}

// FormatLayers writes each z layer of the occupancy as a grid, highest y
// first. Conflicts print as "?", blanks as "_" and empty coordinates as
// ".". When layer is non-nil only that z is written. Returns the number of
// layers written.
func FormatLayers(w io.Writer, occ lattice.Occupancy, layer *int) int {
	lo, hi, ok := occ.Bounds()
	if !ok {
		fmt.Fprintln(w, "Lattice is empty")
		return 0
	}

	written := 0
	for z := lo.Z; z <= hi.Z; z++ {
		if layer != nil && *layer != z {
			continue
		}
		if written > 0 {
			fmt.Fprintln(w)
		}
		written++

		fmt.Fprintf(w, "z=%d  x=%d..%d\n", z, lo.X, hi.X)
		for y := hi.Y; y >= lo.Y; y-- {
			var row strings.Builder
			for x := lo.X; x <= hi.X; x++ {
				row.WriteRune(glyph(occ[lattice.Coord{X: x, Y: y, Z: z}]))
			}
			fmt.Fprintf(w, "%4d  %s\n", y, row.String())
		}
	}

	if written == 0 && layer != nil {
		fmt.Fprintf(w, "Layer z=%d is outside the lattice (z=%d..%d)\n", *layer, lo.Z, hi.Z)
	}
	return written
}

func glyph(cell *lattice.Cell) rune {
	switch {
	case cell == nil:
		return glyphEmpty
	case cell.Letter == lattice.Conflict:
		return glyphConflict
	case cell.Letter == lattice.Blank:
		return glyphBlank
	default:
		return cell.Letter
	}
}

// FormatJSONL writes cells as line-delimited JSON, one cell per line, in
// the same shape frames carry them.
func FormatJSONL(w io.Writer, cells []scene.CellView) error {
	for _, cell := range cells {
		data, err := json.Marshal(cell)
		if err != nil {
			return fmt.Errorf("failed to marshal cell to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", string(data)); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes a frame as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, f *scene.Frame) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal frame to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	fmt.Fprintln(w)
	return nil
}

// FormatFrame writes a one-line summary of a frame.
func FormatFrame(w io.Writer, f *scene.Frame) {
	flag := fmt.Sprintf("save=%s", onOff(f.AllowSave))
	if f.Mode == scene.ModeSolving {
		flag = fmt.Sprintf("solved=%s", onOff(f.Solved))
	}

	invalid := 0
	for _, word := range f.Words {
		if !word.Valid {
			invalid++
		}
	}

	fmt.Fprintf(w, "#%-4d %-9s %-20s %3d cells %2d words %2d invalid  %-9s %s\n",
		f.Seq,
		string(f.Mode),
		formatName(f.Name),
		len(f.Cells),
		len(f.Words),
		invalid,
		flag,
		formatTimestamp(f.CreatedAtMs),
	)
}

// FormatHistory lists the entries of a log with the cursor marked.
func FormatHistory(w io.Writer, l history.Log) {
	for i, e := range l.Entries() {
		marker := " "
		if i == l.Cursor() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %3d  %s\n", marker, i, e.Describe())
	}
}

func onOff(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatText shows blanks as underscores and empty text as "-".
func formatText(text string) string {
	if text == "" {
		return "-"
	}
	return strings.ReplaceAll(text, string(lattice.Blank), string(glyphBlank))
}

func formatStatus(s evaluate.WordStatus) string {
	if s.Valid {
		return "ok"
	}
	if len(s.Reasons) == 0 {
		return "-"
	}
	reasons := make([]string, len(s.Reasons))
	for i, r := range s.Reasons {
		reasons[i] = string(r)
	}
	return strings.Join(reasons, ",")
}

// formatDescription truncates descriptions to their first line with max
// 40 characters. Empty descriptions return "-".
func formatDescription(desc string) string {
	firstLine := ""
	for _, line := range strings.Split(desc, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			firstLine = trimmed
			break
		}
	}

	if firstLine == "" {
		return "-"
	}

	if len(firstLine) > 40 {
		return firstLine[:37] + "..."
	}
	return firstLine
}

func formatName(name string) string {
	if name == "" {
		return "-"
	}
	if len(name) > 20 {
		return name[:17] + "..."
	}
	return name
}

// formatTimestamp formats Unix timestamp in milliseconds as relative time
// like "2m ago".
func formatTimestamp(timestampMs int64) string {
	if timestampMs == 0 {
		return "-"
	}

	t := time.Unix(timestampMs/1000, (timestampMs%1000)*1000000)
	diff := time.Since(t)

	if diff < time.Minute {
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
}
