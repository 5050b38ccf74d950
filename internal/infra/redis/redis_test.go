package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "foodscroll:catalog:42", catalogKey(42))
	assert.Equal(t, "foodscroll:reconcile:dirty_videos", dirtyVideosKey)
	assert.Equal(t, "foodscroll:a:b:c", Key("a", "b", "c"))
}

func TestPingWithoutInit(t *testing.T) {
	saved := Client
	Client = nil
	defer func() { Client = saved }()

	assert.Error(t, Ping(context.Background()))
}
