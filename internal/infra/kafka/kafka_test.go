package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *stubWriter) Close() error { return nil }

func TestPublishEngagement(t *testing.T) {
	w := &stubWriter{}
	p := &Producer{writer: w, topic: "video-engagement"}
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	err := p.PublishEngagement(context.Background(), &EngagementEvent{
		VideoID: 7, UserID: 3, Kind: "like", Active: true, Count: 12, OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "video-engagement", msg.Topic)
	assert.Equal(t, "video-7", string(msg.Key))

	var got EngagementEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, int64(12), got.Count)
	assert.True(t, got.OccurredAt.Equal(at))
}

func TestPublishEngagementWriteError(t *testing.T) {
	p := &Producer{writer: &stubWriter{err: errors.New("broker down")}, topic: "t"}
	err := p.PublishEngagement(context.Background(), &EngagementEvent{VideoID: 1})
	assert.Error(t, err)
}

type stubReader struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	closed bool
	cancel context.CancelFunc
}

func (r *stubReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *stubReader) Close() error {
	r.closed = true
	return nil
}

func TestConsumeSkipsMalformedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	good, _ := json.Marshal(EngagementEvent{VideoID: 9, Kind: "save"})
	r := &stubReader{
		msgs:   []kafka.Message{{Value: []byte("{not json")}, {Value: good}},
		cancel: cancel,
	}

	var handled []int64
	consume(ctx, r, func(_ context.Context, e *EngagementEvent) error {
		handled = append(handled, e.VideoID)
		return errors.New("index down")
	})

	assert.Equal(t, []int64{9}, handled)
	assert.True(t, r.closed)
}
