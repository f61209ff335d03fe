package crossword

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dyluth/xw3d/pkg/lattice"
)

// fileValidate checks the structural shape of decoded puzzle files.
var fileValidate *validator.Validate

func init() {
	fileValidate = validator.New()
}

// puzzleFile is the on-disk JSON shape.
type puzzleFile struct {
	Name  string     `json:"name" validate:"min=1"`
	Words []wordFile `json:"words" validate:"required,dive"`
}

type wordFile struct {
	Word        string `json:"word"`
	Direction   string `json:"direction" validate:"oneof=X Y Z"`
	Start       []int  `json:"start" validate:"len=3"`
	Description string `json:"description" validate:"min=1"`
}

// LoadPolicy selects the load-time checks layered on top of the shape.
// Zero bounds mean unbounded.
type LoadPolicy struct {
	UppercaseOnly bool // reject words with characters outside A-Z
	MaxCoordinate int  // reject start components outside [-MaxCoordinate, MaxCoordinate]
	MaxWordLength int  // reject words longer than this
}

// CurrentPolicy checks the alphabet and leaves the lattice unbounded.
func CurrentPolicy() LoadPolicy {
	return LoadPolicy{UppercaseOnly: true}
}

// LegacyPolicy bounds coordinates to [-10, 10] and words to 10 letters,
// without an alphabet check. Answers are upper-cased on load; one that
// still holds a character outside A-Z loads but cannot be guessed.
func LegacyPolicy() LoadPolicy {
	return LoadPolicy{MaxCoordinate: 10, MaxWordLength: 10}
}

// Parse decodes and validates puzzle file content.
func Parse(data []byte, policy LoadPolicy) (Puzzle, error) {
	var f puzzleFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Puzzle{}, invalidFile("failed to parse JSON: %w", err)
	}

	if err := fileValidate.Struct(&f); err != nil {
		return Puzzle{}, invalidFile("failed shape validation: %w", err)
	}

	p := Puzzle{Name: f.Name, Words: make([]Word, 0, len(f.Words))}
	for i, fw := range f.Words {
		start, err := lattice.CoordFromArray(fw.Start)
		if err != nil {
			return Puzzle{}, invalidFile("word %d: %w", i, err)
		}
		text := fw.Word
		if !policy.UppercaseOnly {
			text = strings.ToUpper(text)
		}
		w := Word{
			Text:        text,
			Axis:        lattice.Axis(fw.Direction),
			Start:       start,
			Description: fw.Description,
		}
		if err := policy.check(i, w); err != nil {
			return Puzzle{}, err
		}
		p.Words = append(p.Words, w)
	}

	if err := CheckAnswerKey(p); err != nil {
		return Puzzle{}, err
	}

	return p, nil
}

func (lp LoadPolicy) check(i int, w Word) error {
	if lp.UppercaseOnly {
		for _, r := range w.Text {
			if r < 'A' || r > 'Z' {
				return invalidFile("word %d (%q) contains %q outside A-Z", i, w.Text, r)
			}
		}
	}

	if lp.MaxWordLength > 0 && w.Len() > lp.MaxWordLength {
		return invalidFile("word %d is %d letters long (max: %d)", i, w.Len(), lp.MaxWordLength)
	}

	if lp.MaxCoordinate > 0 {
		for _, v := range w.Start.Array() {
			if v < -lp.MaxCoordinate || v > lp.MaxCoordinate {
				return invalidFile("word %d starts at %s, outside [-%d, %d]", i, w.Start, lp.MaxCoordinate, lp.MaxCoordinate)
			}
		}
	}

	return nil
}

// CheckAnswerKey verifies that no two words of p disagree on the letter at
// a shared coordinate. Blanks are transparent. It works on the words
// directly and does not go through the reconciler.
func CheckAnswerKey(p Puzzle) error {
	type claim struct {
		letter rune
		word   int
	}

	seen := make(map[lattice.Coord]claim)
	for i, w := range p.Words {
		for j, r := range []rune(w.Text) {
			if r == lattice.Blank {
				continue
			}
			c := lattice.LetterPosition(w.Start, w.Axis, j)
			prev, ok := seen[c]
			if !ok {
				seen[c] = claim{letter: r, word: i}
				continue
			}
			if prev.letter != r {
				return invalidCrossword("words %d and %d disagree at %s (%q vs %q)", prev.word, i, c, prev.letter, r)
			}
		}
	}

	return nil
}

// LoadFile reads and parses a puzzle file.
func LoadFile(path string, policy LoadPolicy) (Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Puzzle{}, &LoadError{Kind: FailureOpen, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	return Parse(data, policy)
}

// Export serializes p in the file format.
func Export(p Puzzle) ([]byte, error) {
	f := puzzleFile{Name: p.Name, Words: make([]wordFile, 0, len(p.Words))}
	for _, w := range p.Words {
		f.Words = append(f.Words, wordFile{
			Word:        w.Text,
			Direction:   string(w.Axis),
			Start:       w.Start.Array(),
			Description: w.Description,
		})
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal puzzle: %w", err)
	}
	return append(data, '\n'), nil
}

// FileName is the export file name for p.
func FileName(p Puzzle) string {
	return p.Name + ".json"
}

// ErrUnsafeName is returned when a puzzle name cannot be used as a file name.
var ErrUnsafeName = errors.New("puzzle name cannot be used as a file name")

// WriteFile exports p into dir as FileName(p) and returns the path written.
func WriteFile(dir string, p Puzzle) (string, error) {
	if p.Name == "" || strings.ContainsAny(p.Name, `/\`) || p.Name == "." || p.Name == ".." {
		return "", fmt.Errorf("%w: %q", ErrUnsafeName, p.Name)
	}

	data, err := Export(p)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(p))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
