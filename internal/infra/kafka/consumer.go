package kafka

import (
	"context"
	"encoding/json"
	"time"

	"foodscroll-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EngagementHandler 处理互动事件的回调函数
type EngagementHandler func(ctx context.Context, event *EngagementEvent) error

// messageReader kafka.Reader 的最小子集
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// StartEngagementConsumer 启动互动事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartEngagementConsumer(ctx context.Context, brokers []string, topic, groupID string, handler EngagementHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	logger.Info("Kafka engagement consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	consume(ctx, reader, handler)
}

func consume(ctx context.Context, reader messageReader, handler EngagementHandler) {
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka engagement consumer stopped")
	}()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		var event EngagementEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal engagement event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(ctx, &event); err != nil {
			logger.Error("Failed to handle engagement event",
				zap.Int64("video_id", event.VideoID),
				zap.Error(err),
			)
		}
	}
}
