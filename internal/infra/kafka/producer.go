package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodscroll-go/internal/config"
	"foodscroll-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EngagementEvent 点赞/收藏切换事件消息体
type EngagementEvent struct {
	VideoID    int64     `json:"video_id"`
	UserID     int64     `json:"user_id"`
	Kind       string    `json:"kind"` // like | save
	Active     bool      `json:"active"`
	Count      int64     `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key 同一视频的事件进入同一分区，保证顺序
func (e *EngagementEvent) Key() []byte {
	return []byte(fmt.Sprintf("video-%d", e.VideoID))
}

// messageWriter kafka.Writer 的最小子集，便于测试替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer 互动事件生产者
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer 初始化 Kafka 生产者
// 异步写入，请求路径不等待 broker 确认
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("Kafka async write failed", zap.Int("messages", len(messages)), zap.Error(err))
			}
		},
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.EngagementTopic()),
	)

	return &Producer{writer: writer, topic: cfg.EngagementTopic()}
}

// PublishEngagement 发送互动事件
func (p *Producer) PublishEngagement(ctx context.Context, event *EngagementEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   event.Key(),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send engagement event: %w", err)
	}

	logger.Debug("Engagement event sent",
		zap.Int64("video_id", event.VideoID),
		zap.String("kind", event.Kind),
		zap.Bool("active", event.Active),
	)
	return nil
}

// Close 关闭生产者，刷新未发送的消息
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
