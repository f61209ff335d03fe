package scene

import "fmt"

// Redis key pattern helpers
//
// Key pattern: xw3d:{session}:{entity}
// Channel pattern: xw3d:{session}:{event_type}_events

// SessionsKey returns the Redis key for the set of known sessions.
// Pattern: xw3d:sessions
func SessionsKey() string {
	return "xw3d:sessions"
}

// FrameKey returns the Redis key for a session's latest frame hash.
// Pattern: xw3d:{session}:frame
func FrameKey(session string) string {
	return fmt.Sprintf("xw3d:%s:frame", session)
}

// SeqKey returns the Redis key for a session's frame sequence counter.
// Pattern: xw3d:{session}:seq
func SeqKey(session string) string {
	return fmt.Sprintf("xw3d:%s:seq", session)
}

// FrameEventsChannel returns the Pub/Sub channel name for frame events.
// Pattern: xw3d:{session}:frame_events
func FrameEventsChannel(session string) string {
	return fmt.Sprintf("xw3d:%s:frame_events", session)
}
