package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "xw3d:sessions", SessionsKey())
	assert.Equal(t, "xw3d:abc:frame", FrameKey("abc"))
	assert.Equal(t, "xw3d:abc:seq", SeqKey("abc"))
	assert.Equal(t, "xw3d:abc:frame_events", FrameEventsChannel("abc"))
}
