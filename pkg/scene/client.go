package scene

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client publishes and reads frames for one session.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb     *redis.Client
	session string
}

// NewClient creates a new scene client for the specified session.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - session: session identifier (must not be empty)
func NewClient(redisOpts *redis.Options, session string) (*Client, error) {
	if session == "" {
		return nil, fmt.Errorf("session cannot be empty")
	}

	return &Client{
		rdb:     redis.NewClient(redisOpts),
		session: session,
	}, nil
}

// NewClientFromURL parses a redis:// URL and creates a client.
func NewClientFromURL(url, session string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return NewClient(opts, session)
}

// Session returns the session this client is scoped to.
func (c *Client) Session() string {
	return c.session
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// PublishFrame assigns the next sequence number, stores f as the latest
// frame and publishes it on the session's event channel.
func (c *Client) PublishFrame(ctx context.Context, f *Frame) error {
	if f.SessionID != c.session {
		return fmt.Errorf("frame belongs to session %q, client to %q", f.SessionID, c.session)
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid frame: %w", err)
	}

	seq, err := c.rdb.Incr(ctx, SeqKey(c.session)).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate frame sequence: %w", err)
	}
	f.Seq = seq

	hash, err := FrameToHash(f)
	if err != nil {
		return fmt.Errorf("failed to serialize frame: %w", err)
	}

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, FrameKey(c.session))
	pipe.HSet(ctx, FrameKey(c.session), hash)
	pipe.SAdd(ctx, SessionsKey(), c.session)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write frame to Redis: %w", err)
	}

	frameJSON, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal frame for event: %w", err)
	}

	if err := c.rdb.Publish(ctx, FrameEventsChannel(c.session), frameJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish frame event: %w", err)
	}

	logEvent("frame_published", map[string]interface{}{
		"session": c.session,
		"seq":     f.Seq,
		"mode":    f.Mode,
		"cells":   len(f.Cells),
	})

	return nil
}

// LatestFrame returns the most recently published frame.
// Returns (nil, redis.Nil) if nothing has been published yet.
// Use IsNotFound() to check for not-found errors.
func (c *Client) LatestFrame(ctx context.Context) (*Frame, error) {
	hashData, err := c.rdb.HGetAll(ctx, FrameKey(c.session)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read frame from Redis: %w", err)
	}

	// HGetAll returns an empty map for missing keys
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	frame, err := HashToFrame(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize frame: %w", err)
	}

	return frame, nil
}

// Sessions lists every session that has published a frame, sorted.
func (c *Client) Sessions(ctx context.Context) ([]string, error) {
	sessions, err := c.rdb.SMembers(ctx, SessionsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sort.Strings(sessions)
	return sessions, nil
}

// Clear removes the session's frame, sequence counter and registration.
func (c *Client) Clear(ctx context.Context) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, FrameKey(c.session), SeqKey(c.session))
	pipe.SRem(ctx, SessionsKey(), c.session)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Subscription represents an active Pub/Sub subscription to frame events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *Frame
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of frames.
// The channel will be closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *Frame {
	return s.events
}

// Errors returns the channel of subscription errors.
// The subscription continues after errors - messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements io.Closer.
// Safe to call multiple times - subsequent calls are no-ops.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeFrames subscribes to frames published for this session.
// Caller must call subscription.Close() when done.
// Context cancellation also stops the subscription.
//
// Frames are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once: a slow subscriber can miss frames, and LatestFrame is the
// way to catch up.
func (c *Client) SubscribeFrames(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, FrameEventsChannel(c.session))

	// Wait for the subscription to be confirmed so no frame published after
	// this call returns is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to frame events: %w", err)
	}

	eventsChan := make(chan *Frame, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var frame Frame
				if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal frame event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &frame:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

// logEvent writes a structured JSON log line.
func logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "scene"
	data["event_type"] = eventType

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Scene] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
