// Package watch follows a puzzle as it changes: frames published to the
// scene feed, and edits to a puzzle file on disk.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/dyluth/xw3d/pkg/scene"
)

// PollForFrame polls the session's latest frame until one newer than
// afterSeq appears. Returns an error if timeout occurs.
// Polls every 200ms for the specified timeout duration.
func PollForFrame(ctx context.Context, client *scene.Client, afterSeq int64, timeout time.Duration) (*scene.Frame, error) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	timeoutCh := time.After(timeout)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-timeoutCh:
			return nil, fmt.Errorf("timeout waiting for frame after %v", timeout)

		case <-ticker.C:
			frame, err := client.LatestFrame(ctx)
			if err != nil {
				if scene.IsNotFound(err) {
					// Nothing published yet, continue polling
					continue
				}
				return nil, fmt.Errorf("failed to query for frame: %w", err)
			}

			if frame.Seq > afterSeq {
				return frame, nil
			}
		}
	}
}

// FrameHandler is called for every frame a follower receives. Returning
// an error stops the follower.
type FrameHandler func(f *scene.Frame) error

// FollowFrames delivers the session's frames to handler until ctx is
// cancelled or handler fails. When catchUp is set the latest stored frame
// is delivered first, so a follower started mid-session has something to
// show.
func FollowFrames(ctx context.Context, client *scene.Client, catchUp bool, handler FrameHandler) error {
	sub, err := client.SubscribeFrames(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	var lastSeq int64
	if catchUp {
		frame, err := client.LatestFrame(ctx)
		switch {
		case err == nil:
			lastSeq = frame.Seq
			if err := handler(frame); err != nil {
				return err
			}
		case !scene.IsNotFound(err):
			return fmt.Errorf("failed to read latest frame: %w", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case frame, ok := <-sub.Events():
			if !ok {
				return nil
			}
			// The catch-up frame can also arrive on the channel.
			if frame.Seq <= lastSeq {
				continue
			}
			lastSeq = frame.Seq
			if err := handler(frame); err != nil {
				return err
			}

		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			logEvent("frame_skipped", map[string]interface{}{
				"session": client.Session(),
				"error":   err.Error(),
			})
		}
	}
}
