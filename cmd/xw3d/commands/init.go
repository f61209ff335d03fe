package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/internal/scaffold"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new xw3d project",
	Long: `Initialize a new xw3d project in the current directory.

Creates:
  • xw3d.yml - Load policy, render and scene settings
  • example.json - A small valid puzzle to start from

Use --force to overwrite existing files.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite existing xw3d.yml and example.json")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if !forceInit {
		if err := scaffold.CheckExisting("."); err != nil {
			return printer.Error("project already initialized", err.Error(), nil)
		}
	}

	if err := scaffold.Initialize(".", forceInit); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	printer.Success("Initialized xw3d project\n")
	printer.Println("\nCreated:")
	for _, path := range scaffold.CreatedFiles() {
		printer.Printf("  ✓ %s\n", path)
	}
	printer.Println("\nNext steps:")
	printer.Println("  1. Inspect the example:  xw3d show example.json")
	printer.Println("  2. Edit it:              xw3d author example.json")
	printer.Println("  3. Solve it:             xw3d play example.json")
	return nil
}
