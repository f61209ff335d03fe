package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dyluth/xw3d/internal/config"
	"github.com/dyluth/xw3d/pkg/crossword"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		setupFunc func(string)
		wantErr   bool
	}{
		{
			name:      "fresh initialization",
			setupFunc: func(dir string) {},
		},
		{
			name:  "force initialization overwrites existing files",
			force: true,
			setupFunc: func(dir string) {
				os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old content"), 0644)
				os.WriteFile(filepath.Join(dir, ExampleFile), []byte("{"), 0644)
			},
		},
		{
			name: "existing files without force",
			setupFunc: func(dir string) {
				os.WriteFile(filepath.Join(dir, ExampleFile), []byte("{}"), 0644)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setupFunc(dir)

			err := Initialize(dir, tt.force)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			for _, path := range CreatedFiles() {
				_, err := os.Stat(filepath.Join(dir, path))
				assert.NoError(t, err, "expected %s to exist", path)
			}
		})
	}
}

func TestInitialize_ConfigTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, false))

	content, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(content, &raw))
	assert.Equal(t, "1.0", raw["version"])

	cfg, err := config.Load(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, config.PolicyCurrent, cfg.Load.Policy)
	assert.Equal(t, 0.35, *cfg.Render.DimEmphasis)
}

func TestInitialize_ExamplePuzzle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, false))

	p, err := crossword.LoadFile(filepath.Join(dir, ExampleFile), crossword.CurrentPolicy())
	require.NoError(t, err)
	assert.Equal(t, "example", p.Name)
	require.Len(t, p.Words, 3)
	assert.Equal(t, "example.json", crossword.FileName(p))
}

func TestValidateProject(t *testing.T) {
	t.Run("rejects bad config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Initialize(dir, false))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("version: \"2.0\"\n"), 0644))

		err := ValidateProject(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "xw3d.yml is not valid")
	})

	t.Run("rejects conflicting example", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Initialize(dir, false))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ExampleFile), []byte(`{"name": "x", "words": [
			{"word": "AB", "direction": "X", "start": [0,0,0], "description": "d"},
			{"word": "CD", "direction": "Z", "start": [0,0,0], "description": "d"}]}`), 0644))

		err := ValidateProject(dir)
		require.Error(t, err)
		assert.True(t, crossword.IsInvalidCrossword(err))
	})
}
