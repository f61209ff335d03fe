package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/xw3d/internal/evaluate"
	"github.com/dyluth/xw3d/internal/history"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
	"github.com/dyluth/xw3d/pkg/scene"
)

func greetings(second string) crossword.Puzzle {
	return crossword.Puzzle{
		Name: "greetings",
		Words: []crossword.Word{
			{Text: "HELLO", Axis: lattice.AxisX, Start: lattice.Origin, Description: "A greeting"},
			{Text: second, Axis: lattice.AxisY, Start: lattice.Coord{X: 4}, Description: "Kisses"},
		},
	}
}

func evaluated(p crossword.Puzzle) (lattice.Occupancy, evaluate.Report) {
	occ := lattice.Reconcile(p.Placements(), lattice.NoSelection, lattice.DefaultEmphasis)
	return occ, evaluate.Authoring(p, occ)
}

func TestFormatWords(t *testing.T) {
	p := greetings("AXXXX")
	_, report := evaluated(p)

	var buf bytes.Buffer
	n := FormatWords(&buf, p, report, lattice.Select(1))
	assert.Equal(t, 2, n)

	out := buf.String()
	assert.Contains(t, out, "Words in 'greetings'")
	assert.Contains(t, out, "HELLO")
	assert.Contains(t, out, "conflict")
	assert.Contains(t, out, "2 words")

	lines := strings.Split(out, "\n")
	var selected string
	for _, line := range lines {
		if strings.HasPrefix(line, ">") {
			selected = line
		}
	}
	assert.Contains(t, selected, "AXXXX")
}

func TestFormatWords_Empty(t *testing.T) {
	var buf bytes.Buffer
	n := FormatWords(&buf, crossword.Puzzle{Name: "empty"}, evaluate.Report{}, lattice.NoSelection)
	assert.Equal(t, 0, n)
	assert.Equal(t, "No words in 'empty'\n", buf.String())
}

func TestFormatGuesses(t *testing.T) {
	p := greetings("OXXXX")
	guesses := []string{"HEL  ", "OXXXX"}
	answers := lattice.Reconcile(p.Placements(), lattice.NoSelection, lattice.DefaultEmphasis)
	occ := lattice.ReconcileGuesses(lattice.Background(answers), p.GuessPlacements(guesses), lattice.NoSelection, lattice.DefaultEmphasis)
	report := evaluate.Solving(p, guesses, occ)

	var buf bytes.Buffer
	FormatGuesses(&buf, p, guesses, report, lattice.NoSelection)
	out := buf.String()
	assert.Contains(t, out, "GUESS")
	assert.Contains(t, out, "HEL__")
	assert.Contains(t, out, "blank_letter")
	assert.NotContains(t, out, "HELLO")
}

func TestFormatLayers(t *testing.T) {
	occ, _ := evaluated(greetings("AXXXX"))

	var buf bytes.Buffer
	n := FormatLayers(&buf, occ, nil)
	assert.Equal(t, 1, n)

	expected := strings.Join([]string{
		"z=0  x=0..4",
		"   0  HELL?",
		"  -1  ....X",
		"  -2  ....X",
		"  -3  ....X",
		"  -4  ....X",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestFormatLayers_BlanksAndLayers(t *testing.T) {
	occ := lattice.Reconcile([]lattice.Placement{
		{Index: 0, Text: "A C", Axis: lattice.AxisZ},
	}, lattice.NoSelection, lattice.DefaultEmphasis)

	var buf bytes.Buffer
	assert.Equal(t, 3, FormatLayers(&buf, occ, nil))
	assert.Contains(t, buf.String(), "z=1  x=0..0\n   0  _\n")

	buf.Reset()
	layer := 2
	assert.Equal(t, 1, FormatLayers(&buf, occ, &layer))
	assert.Equal(t, "z=2  x=0..0\n   0  C\n", buf.String())

	buf.Reset()
	layer = 9
	assert.Equal(t, 0, FormatLayers(&buf, occ, &layer))
	assert.Contains(t, buf.String(), "outside the lattice")

	buf.Reset()
	assert.Equal(t, 0, FormatLayers(&buf, lattice.Occupancy{}, nil))
	assert.Equal(t, "Lattice is empty\n", buf.String())
}

func TestFormatJSONL(t *testing.T) {
	p := greetings("OXXXX")
	occ, report := evaluated(p)
	f := Frame("s1", scene.ModeAuthoring, p, occ, report, lattice.NoSelection, lattice.Origin)

	var buf bytes.Buffer
	require.NoError(t, FormatJSONL(&buf, f.Cells))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)

	var first scene.CellView
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "H", first.Letter)
	assert.Equal(t, []int{0}, first.Words)
}

func TestFormatSingleJSON(t *testing.T) {
	p := greetings("OXXXX")
	occ, report := evaluated(p)
	f := Frame("s1", scene.ModeAuthoring, p, occ, report, lattice.Select(0), lattice.Coord{X: 1})

	var buf bytes.Buffer
	require.NoError(t, FormatSingleJSON(&buf, f))

	var back scene.Frame
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *f, back)
}

func TestFrame(t *testing.T) {
	p := greetings("AXXXX")
	occ, report := evaluated(p)

	f := Frame("s1", scene.ModeAuthoring, p, occ, report, lattice.Select(0), lattice.Coord{X: 4})
	require.NoError(t, f.Validate())
	assert.Equal(t, "greetings", f.Name)
	assert.False(t, f.AllowSave)
	assert.Equal(t, 0, f.Selection)
	assert.Equal(t, [3]int{4, 0, 0}, f.Orbit)
	assert.Equal(t, []scene.WordView{
		{Index: 0, Valid: false, Reasons: []string{"conflict"}},
		{Index: 1, Valid: false, Reasons: []string{"conflict"}},
	}, f.Words)
}

func TestFormatFrame(t *testing.T) {
	p := greetings("OXXXX")
	occ, report := evaluated(p)
	f := Frame("s1", scene.ModeAuthoring, p, occ, report, lattice.NoSelection, lattice.Origin)
	f.Seq = 3

	var buf bytes.Buffer
	FormatFrame(&buf, f)
	out := buf.String()
	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "authoring")
	assert.Contains(t, out, "9 cells")
	assert.Contains(t, out, "save=yes")

	f.Mode = scene.ModeSolving
	buf.Reset()
	FormatFrame(&buf, f)
	assert.Contains(t, buf.String(), "solved=no")
}

func TestFormatHistory(t *testing.T) {
	l := history.NewLog("p")
	d := history.NewWord(crossword.Word{Text: "CAT", Axis: lattice.AxisX, Description: "d"})
	l, err := l.Record(history.NewEntry("p", &d, lattice.Select(0), lattice.Origin))
	require.NoError(t, err)

	var buf bytes.Buffer
	FormatHistory(&buf, l)
	assert.Equal(t, "    0  open \"p\"\n*   1  new word \"CAT\" along X at 0,0,0\n", buf.String())
}

func TestFormatDescription(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		expected string
	}{
		{"empty", "", "-"},
		{"short", "A greeting", "A greeting"},
		{"exactly 40 chars", strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"41 chars truncates", strings.Repeat("a", 41), strings.Repeat("a", 37) + "..."},
		{"first line only", "First line\nSecond line", "First line"},
		{"whitespace", "  \n  hello world  \n  ", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDescription(tt.desc))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "-", formatTimestamp(0))
	assert.Contains(t, formatTimestamp(now.Add(-5*time.Second).UnixMilli()), "s ago")
	assert.Equal(t, "5m ago", formatTimestamp(now.Add(-5*time.Minute-time.Second).UnixMilli()))
	assert.Equal(t, "3h ago", formatTimestamp(now.Add(-3*time.Hour-time.Second).UnixMilli()))
	assert.Equal(t, "2d ago", formatTimestamp(now.Add(-49*time.Hour).UnixMilli()))
}
