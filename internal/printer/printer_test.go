package printer

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/xw3d/pkg/crossword"
)

// capture redirects Out and Err for the duration of the test.
func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := Out, Err
	Out, Err = out, errOut
	t.Cleanup(func() { Out, Err = prevOut, prevErr })
	return out, errOut
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		capture(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})

	t.Run("single suggestion is printed bare", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "Try this fix")
		assert.NotContains(t, errOut.String(), "Either:")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "Either:")
		assert.Contains(t, errOut.String(), "2. Second option")
	})
}

func TestErrorWithContext(t *testing.T) {
	_, errOut := capture(t)
	context := map[string]string{
		"Word": "3",
		"File": "/path/to/puzzle.json",
	}
	err := ErrorWithContext("Test Error", "Explanation", context, []string{"Fix it"})
	require.Equal(t, "Test Error", err.Error())

	text := errOut.String()
	assert.Less(t, bytes.Index([]byte(text), []byte("File:")), bytes.Index([]byte(text), []byte("Word:")))
}

func TestLoadFailure(t *testing.T) {
	t.Run("open failure", func(t *testing.T) {
		_, errOut := capture(t)
		_, loadErr := crossword.LoadFile(filepath.Join(t.TempDir(), "missing.json"), crossword.CurrentPolicy())
		err := LoadFailure("missing.json", loadErr)
		assert.Equal(t, "Couldn't open the file", err.Error())
		assert.Contains(t, errOut.String(), "missing.json")
	})

	t.Run("invalid file", func(t *testing.T) {
		capture(t)
		_, loadErr := crossword.Parse([]byte("{"), crossword.CurrentPolicy())
		assert.Equal(t, "Invalid file", LoadFailure("x.json", loadErr).Error())
	})

	t.Run("invalid crossword", func(t *testing.T) {
		capture(t)
		_, loadErr := crossword.Parse([]byte(`{"name": "x", "words": [
			{"word": "AB", "direction": "X", "start": [0,0,0], "description": "d"},
			{"word": "CD", "direction": "Z", "start": [0,0,0], "description": "d"}]}`), crossword.CurrentPolicy())
		assert.Equal(t, "Invalid crossword", LoadFailure("x.json", loadErr).Error())
	})

	t.Run("foreign errors read as open failures", func(t *testing.T) {
		capture(t)
		assert.Equal(t, "Couldn't open the file", LoadFailure("x.json", errors.New("boom")).Error())
	})
}

func TestMessages(t *testing.T) {
	out, _ := capture(t)

	Success("saved %s\n", "cube.json")
	Warning("save disabled\n")
	Step("checking\n")
	Info("plain %d\n", 1)

	text := out.String()
	assert.Contains(t, text, "✓ saved cube.json")
	assert.Contains(t, text, "save disabled")
	assert.Contains(t, text, "→ checking")
	assert.Contains(t, text, "plain 1")
}
