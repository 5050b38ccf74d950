package service

import (
	"context"
	"errors"
	"time"

	"foodscroll-go/internal/api/dto"
	infraKafka "foodscroll-go/internal/infra/kafka"
	"foodscroll-go/internal/model"
	"foodscroll-go/internal/repository"
	"foodscroll-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EngagementService struct {
	engagementRepo EngagementStore
	publisher      EventPublisher
	dirty          DirtyTracker
}

func NewEngagementService(engagementRepo EngagementStore, publisher EventPublisher, dirty DirtyTracker) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		publisher:      publisher,
		dirty:          dirty,
	}
}

// ToggleLike 点赞/取消点赞
func (s *EngagementService) ToggleLike(ctx context.Context, userID, videoID int64) (*dto.ToggleResult, error) {
	return s.toggle(ctx, model.RelationLike, userID, videoID)
}

// ToggleSave 收藏/取消收藏
func (s *EngagementService) ToggleSave(ctx context.Context, userID, videoID int64) (*dto.ToggleResult, error) {
	return s.toggle(ctx, model.RelationSave, userID, videoID)
}

func (s *EngagementService) toggle(ctx context.Context, kind model.RelationKind, userID, videoID int64) (*dto.ToggleResult, error) {
	active, count, err := s.engagementRepo.Toggle(ctx, kind, userID, videoID)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrVideoNotFound
	case errors.Is(err, repository.ErrRelationConflict):
		// 并发请求已插入同一关系，本次按无操作处理，返回当前状态
		active, count, err = s.currentState(ctx, kind, userID, videoID)
		if err != nil {
			s.markDirty(ctx, videoID)
			return nil, storeErr(err)
		}
		return &dto.ToggleResult{VideoID: videoID, Active: active, Count: count}, nil
	default:
		s.markDirty(ctx, videoID)
		logger.Error("Toggle engagement failed",
			zap.String("kind", string(kind)),
			zap.Int64("user_id", userID),
			zap.Int64("video_id", videoID),
			zap.Error(err),
		)
		return nil, storeErr(err)
	}

	s.publish(ctx, &infraKafka.EngagementEvent{
		VideoID:    videoID,
		UserID:     userID,
		Kind:       string(kind),
		Active:     active,
		Count:      count,
		OccurredAt: time.Now(),
	})

	return &dto.ToggleResult{VideoID: videoID, Active: active, Count: count}, nil
}

func (s *EngagementService) currentState(ctx context.Context, kind model.RelationKind, userID, videoID int64) (bool, int64, error) {
	active, err := s.engagementRepo.Exists(ctx, kind, userID, videoID)
	if err != nil {
		return false, 0, err
	}
	count, err := s.engagementRepo.CounterValue(ctx, kind, videoID)
	if err != nil {
		return false, 0, err
	}
	return active, count, nil
}

func (s *EngagementService) markDirty(ctx context.Context, videoID int64) {
	if s.dirty == nil {
		return
	}
	if err := s.dirty.MarkDirty(ctx, videoID); err != nil {
		logger.Warn("Mark video dirty failed", zap.Int64("video_id", videoID), zap.Error(err))
	}
}

func (s *EngagementService) publish(ctx context.Context, event *infraKafka.EngagementEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEngagement(ctx, event); err != nil {
		logger.Warn("Publish engagement event failed",
			zap.Int64("video_id", event.VideoID),
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
	}
}
