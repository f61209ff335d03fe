package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/xw3d/internal/config"
	"github.com/dyluth/xw3d/pkg/crossword"
)

//go:embed templates/*
var templatesFS embed.FS

// Files created by Initialize, relative to the target directory.
const (
	ConfigFile  = config.DefaultPath
	ExampleFile = "example.json"
)

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Template    string
	Permissions os.FileMode
}

var files = []FileInfo{
	{Path: ConfigFile, Template: "templates/xw3d.yml.tmpl", Permissions: 0644},
	{Path: ExampleFile, Template: "templates/example.json.tmpl", Permissions: 0644},
}

// Initialize writes a starter xw3d.yml and example puzzle into dir.
// If force is true, existing files are overwritten.
func Initialize(dir string, force bool) error {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return err
		}
	}

	for _, file := range files {
		content, err := templatesFS.ReadFile(file.Template)
		if err != nil {
			return fmt.Errorf("failed to read %s template: %w", file.Path, err)
		}

		path := filepath.Join(dir, file.Path)
		if err := os.WriteFile(path, content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return ValidateProject(dir)
}

// ValidateProject checks that the configuration in dir loads and that the
// example puzzle is a valid crossword under the configured policy.
func ValidateProject(dir string) error {
	cfg, err := config.Load(filepath.Join(dir, ConfigFile))
	if err != nil {
		return fmt.Errorf("created %s is not valid: %w", ConfigFile, err)
	}

	if _, err := crossword.LoadFile(filepath.Join(dir, ExampleFile), cfg.LoadPolicy()); err != nil {
		return fmt.Errorf("created %s is not valid: %w", ExampleFile, err)
	}

	return nil
}

// CreatedFiles lists the paths Initialize writes, for reporting.
func CreatedFiles() []string {
	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.Path
	}
	return paths
}
