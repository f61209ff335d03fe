package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dyluth/xw3d/internal/config"
	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/internal/render"
	"github.com/dyluth/xw3d/internal/resolver"
	"github.com/dyluth/xw3d/internal/watch"
	"github.com/dyluth/xw3d/pkg/scene"
)

var (
	watchSession      string
	watchOutputFormat string
	watchWait         time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow frames published by a session",
	Long: `Follow the frames an authoring or solving session publishes with --publish.

The latest stored frame is shown first, then every new frame as it arrives.

Output Formats:
  default - One summary line per frame
  json    - Line-delimited JSON frames, as the renderer receives them

Examples:
  # List sessions that have published frames
  xw3d watch

  # Follow one session (a unique prefix of its ID is enough)
  xw3d watch --session 3f0c

  # Wait up to a minute for the session's next frame, print it, and exit
  xw3d watch --session 3f0c... --wait 1m --output=json`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSession, "session", "", "Session to follow (defaults to scene.session in xw3d.yml)")
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default or json)")
	watchCmd.Flags().DurationVar(&watchWait, "wait", 0, "Print the next frame only, waiting at most this long")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchOutputFormat != "default" && watchOutputFormat != "json" {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	session := cfg.Scene.Session
	if watchSession != "" {
		if session, err = resolveSession(ctx, cfg, watchSession); err != nil {
			return err
		}
	}
	if session == "" {
		return listSessions(ctx, cfg)
	}

	client, err := connectScene(ctx, cfg, session)
	if err != nil {
		return err
	}
	defer client.Close()

	emit := func(f *scene.Frame) error {
		if watchOutputFormat == "json" {
			return render.FormatSingleJSON(printer.Out, f)
		}
		render.FormatFrame(printer.Out, f)
		return nil
	}

	if watchWait > 0 {
		var after int64
		if latest, err := client.LatestFrame(ctx); err == nil {
			after = latest.Seq
		} else if !scene.IsNotFound(err) {
			return fmt.Errorf("failed to read latest frame: %w", err)
		}

		frame, err := watch.PollForFrame(ctx, client, after, watchWait)
		if err != nil {
			return printer.Error("no new frame", err.Error(), []string{"Check that the session is publishing (--publish)"})
		}
		return emit(frame)
	}

	if watchOutputFormat == "default" {
		printer.Info("Following session %s (Ctrl+C to stop)\n", session)
	}
	return watch.FollowFrames(ctx, client, true, emit)
}

// resolveSession expands a session prefix to the full session ID.
func resolveSession(ctx context.Context, cfg *config.Config, prefix string) (string, error) {
	client, err := connectScene(ctx, cfg, uuid.New().String())
	if err != nil {
		return "", err
	}
	defer client.Close()

	session, err := resolver.ResolveSession(ctx, client, prefix)
	if err == nil {
		return session, nil
	}

	var ambiguous *resolver.AmbiguousError
	switch {
	case errors.As(err, &ambiguous):
		return "", printer.Error("ambiguous session", resolver.FormatAmbiguousError(ambiguous), nil)
	case resolver.IsNotFoundError(err):
		return "", printer.Error(
			"session not found",
			err.Error(),
			[]string{"List sessions that have published frames:\n  xw3d watch"},
		)
	default:
		return "", printer.Error("invalid session", err.Error(), nil)
	}
}

// listSessions prints the sessions that have published frames.
func listSessions(ctx context.Context, cfg *config.Config) error {
	// Sessions are listed from a shared key; the client's own session is unused.
	client, err := connectScene(ctx, cfg, uuid.New().String())
	if err != nil {
		return err
	}
	defer client.Close()

	sessions, err := client.Sessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		printer.Info("No sessions have published frames\n")
		return nil
	}

	printer.Println("Sessions:")
	for _, s := range sessions {
		printer.Printf("  %s\n", s)
	}
	printer.Println("\nFollow one with: xw3d watch --session ID")
	return nil
}
