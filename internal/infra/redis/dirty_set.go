package redis

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var dirtyVideosKey = Key("reconcile", "dirty_videos")

// DirtySet 计数可能漂移的视频 ID 集合，API 写入，worker 消费
type DirtySet struct {
	client redis.Cmdable
}

func NewDirtySet(client redis.Cmdable) *DirtySet {
	return &DirtySet{client: client}
}

func (d *DirtySet) MarkDirty(ctx context.Context, videoID int64) error {
	return d.client.SAdd(ctx, dirtyVideosKey, videoID).Err()
}

// PopDirty 随机弹出至多 n 个视频 ID
func (d *DirtySet) PopDirty(ctx context.Context, n int) ([]int64, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := d.client.SPopN(ctx, dirtyVideosKey, int64(n)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Size 当前待对账数量
func (d *DirtySet) Size(ctx context.Context) (int64, error) {
	return d.client.SCard(ctx, dirtyVideosKey).Result()
}
