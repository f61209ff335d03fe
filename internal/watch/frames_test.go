package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/xw3d/pkg/lattice"
	"github.com/dyluth/xw3d/pkg/scene"
)

func setupTestClient(t *testing.T) *scene.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := scene.NewClient(&redis.Options{Addr: mr.Addr()}, "test-session")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func catFrame(name string) *scene.Frame {
	occ := lattice.Reconcile([]lattice.Placement{
		{Index: 0, Text: "CAT", Axis: lattice.AxisX},
	}, lattice.NoSelection, lattice.DefaultEmphasis)
	return scene.BuildFrame("test-session", scene.ModeAuthoring, name, occ, []scene.WordView{{Index: 0, Valid: true}})
}

func TestPollForFrame(t *testing.T) {
	ctx := context.Background()

	t.Run("returns frame when found immediately", func(t *testing.T) {
		client := setupTestClient(t)
		require.NoError(t, client.PublishFrame(ctx, catFrame("first")))

		frame, err := PollForFrame(ctx, client, 0, 2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, "first", frame.Name)
		assert.Equal(t, int64(1), frame.Seq)
	})

	t.Run("returns frame when published after delay", func(t *testing.T) {
		client := setupTestClient(t)
		require.NoError(t, client.PublishFrame(ctx, catFrame("old")))

		go func() {
			time.Sleep(300 * time.Millisecond)
			client.PublishFrame(ctx, catFrame("new"))
		}()

		frame, err := PollForFrame(ctx, client, 1, 3*time.Second)
		require.NoError(t, err)
		assert.Equal(t, "new", frame.Name)
	})

	t.Run("times out when nothing is published", func(t *testing.T) {
		client := setupTestClient(t)

		_, err := PollForFrame(ctx, client, 0, 500*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout waiting for frame")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		client := setupTestClient(t)
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := PollForFrame(cancelCtx, client, 0, 2*time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFollowFrames(t *testing.T) {
	t.Run("catches up then follows", func(t *testing.T) {
		client := setupTestClient(t)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		require.NoError(t, client.PublishFrame(ctx, catFrame("stored")))

		got := make(chan string, 10)
		done := make(chan error, 1)
		go func() {
			done <- FollowFrames(ctx, client, true, func(f *scene.Frame) error {
				got <- f.Name
				if f.Name == "live" {
					return errStop
				}
				return nil
			})
		}()

		assert.Equal(t, "stored", <-got)
		require.NoError(t, client.PublishFrame(ctx, catFrame("live")))
		assert.Equal(t, "live", <-got)

		assert.ErrorIs(t, <-done, errStop)
	})

	t.Run("returns nil on cancellation", func(t *testing.T) {
		client := setupTestClient(t)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- FollowFrames(ctx, client, false, func(*scene.Frame) error { return nil })
		}()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("follower did not stop")
		}
	})
}

var errStop = errors.New("stop")
