package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckExisting checks if xw3d.yml or example.json already exist in dir
// Returns an error if they do, nil otherwise
func CheckExisting(dir string) error {
	var existingFiles []string

	for _, file := range files {
		if _, err := os.Stat(filepath.Join(dir, file.Path)); err == nil {
			existingFiles = append(existingFiles, file.Path)
		}
	}

	if len(existingFiles) > 0 {
		errMsg := "project already initialized\n\nFound existing"
		if len(existingFiles) == 1 {
			errMsg += fmt.Sprintf(": %s\n", existingFiles[0])
		} else {
			errMsg += " files:\n"
			for _, file := range existingFiles {
				errMsg += fmt.Sprintf("  - %s\n", file)
			}
		}
		errMsg += "\nUse 'xw3d init --force' to reinitialize (this will overwrite existing files)"

		return fmt.Errorf("%s", errMsg)
	}

	return nil
}
