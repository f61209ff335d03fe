package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dyluth/xw3d/internal/config"
	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/scene"
)

var (
	version string
	commit  string
	date    string

	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xw3d",
	Short: "xw3d - three-dimensional crossword authoring and solving",
	Long: `xw3d builds and solves crosswords whose words run along the X, Y and Z
axes of a 3-D lattice of letter blocks.

Puzzles are JSON files. Authoring and solving sessions are driven by line
commands, and every step can be published to a renderer over Redis.`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "f", config.DefaultPath, "Path to xw3d.yml (defaults apply when missing)")
}

// loadConfig reads the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"Config": configPath},
			[]string{"Fix the file, or regenerate it:\n  xw3d init --force"},
		)
	}
	return cfg, nil
}

// loadPuzzle reads a puzzle with the configured policy, reporting the
// failure kind on error.
func loadPuzzle(cfg *config.Config, path string) (crossword.Puzzle, error) {
	p, err := crossword.LoadFile(path, cfg.LoadPolicy())
	if err != nil {
		return crossword.Puzzle{}, printer.LoadFailure(path, err)
	}
	return p, nil
}

// sessionID returns the configured scene session, or a fresh one.
func sessionID(cfg *config.Config) string {
	if cfg.Scene.Session != "" {
		return cfg.Scene.Session
	}
	return uuid.New().String()
}

// connectScene opens and pings the scene feed for session.
func connectScene(ctx context.Context, cfg *config.Config, session string) (*scene.Client, error) {
	client, err := scene.NewClientFromURL(cfg.Scene.RedisURL, session)
	if err != nil {
		return nil, printer.Error(
			"invalid Redis URL",
			err.Error(),
			[]string{"Set scene.redis_url in xw3d.yml, e.g. redis://localhost:6379/0"},
		)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", cfg.Scene.RedisURL),
			map[string]string{"Error": err.Error()},
			[]string{"Start Redis, or point scene.redis_url at a running instance"},
		)
	}
	return client, nil
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
