package service

import (
	"context"
	"errors"

	infraKafka "foodscroll-go/internal/infra/kafka"
	"foodscroll-go/internal/model"
	"foodscroll-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reconcileScanSize = 500

// ReconcileResult 一次对账的统计
type ReconcileResult struct {
	Checked int   `json:"checked"`
	Drifted int   `json:"drifted"`
	Failed  int   `json:"failed"`
	Pending int64 `json:"pending"` // 本轮结束后脏集合剩余数量
}

// ReconcileService 冗余计数对账，修复带外写入或失败事务造成的漂移
type ReconcileService struct {
	videoRepo VideoStore
	dirty     DirtyTracker
	indexer   VideoIndexer
	catalog   CatalogInvalidator
}

func NewReconcileService(videoRepo VideoStore, dirty DirtyTracker, indexer VideoIndexer, catalog CatalogInvalidator) *ReconcileService {
	return &ReconcileService{
		videoRepo: videoRepo,
		dirty:     dirty,
		indexer:   indexer,
		catalog:   catalog,
	}
}

// ReconcileVideo 由关系表重算单个视频的计数，返回是否发现漂移
// 视频已删除时视为无漂移
func (s *ReconcileService) ReconcileVideo(ctx context.Context, videoID int64) (bool, error) {
	before, after, err := s.videoRepo.Recount(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, storeErr(err)
	}

	drifted := countersDiffer(before, after)
	if drifted {
		logger.Warn("Counter drift repaired",
			zap.Int64("video_id", videoID),
			zap.Int64("like_count_before", before.LikeCount),
			zap.Int64("like_count_after", after.LikeCount),
			zap.Int64("saves_count_before", before.SavesCount),
			zap.Int64("saves_count_after", after.SavesCount),
			zap.Int64("comments_count_before", before.CommentsCount),
			zap.Int64("comments_count_after", after.CommentsCount),
		)
		s.refreshIndex(ctx, after)
		s.invalidateCatalog(ctx, after.PartnerID)
	}
	return drifted, nil
}

// ReconcileDirty 消费脏集合中的视频 ID 并逐个对账
// 对账失败的 ID 放回脏集合，下一轮重试
func (s *ReconcileService) ReconcileDirty(ctx context.Context, batch int) (*ReconcileResult, error) {
	result := &ReconcileResult{}
	if s.dirty == nil {
		return result, nil
	}

	ids, err := s.dirty.PopDirty(ctx, batch)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		s.reconcileOne(ctx, id, result, true)
	}

	pending, err := s.dirty.Size(ctx)
	if err != nil {
		logger.Warn("Read dirty set size failed", zap.Error(err))
	} else {
		result.Pending = pending
	}
	return result, nil
}

// ReconcileAll 按 ID 顺序遍历全部视频对账
func (s *ReconcileService) ReconcileAll(ctx context.Context) (*ReconcileResult, error) {
	result := &ReconcileResult{}
	var afterID int64
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		ids, err := s.videoRepo.ListIDsAfter(ctx, afterID, reconcileScanSize)
		if err != nil {
			return result, storeErr(err)
		}
		if len(ids) == 0 {
			return result, nil
		}

		for _, id := range ids {
			s.reconcileOne(ctx, id, result, false)
		}
		afterID = ids[len(ids)-1]
	}
}

// HandleEngagement 互动事件消费者回调，未知类型的事件直接丢弃
func (s *ReconcileService) HandleEngagement(ctx context.Context, event *infraKafka.EngagementEvent) error {
	if !model.RelationKind(event.Kind).Valid() {
		logger.Warn("Drop engagement event with unknown kind",
			zap.Int64("video_id", event.VideoID),
			zap.String("kind", event.Kind),
		)
		return nil
	}
	return s.RefreshVideo(ctx, event.VideoID)
}

// RefreshVideo 用数据库当前值刷新视频的派生视图：搜索索引与商家主页缓存
func (s *ReconcileService) RefreshVideo(ctx context.Context, videoID int64) error {
	if s.indexer == nil && s.catalog == nil {
		return nil
	}
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return storeErr(err)
	}

	s.invalidateCatalog(ctx, video.PartnerID)
	if s.indexer == nil {
		return nil
	}
	return s.indexer.IndexVideo(ctx, video)
}

func (s *ReconcileService) reconcileOne(ctx context.Context, videoID int64, result *ReconcileResult, requeue bool) {
	result.Checked++
	drifted, err := s.ReconcileVideo(ctx, videoID)
	if err != nil {
		result.Failed++
		logger.Error("Reconcile video failed", zap.Int64("video_id", videoID), zap.Error(err))
		if requeue && s.dirty != nil {
			if err := s.dirty.MarkDirty(ctx, videoID); err != nil {
				logger.Warn("Requeue dirty video failed", zap.Int64("video_id", videoID), zap.Error(err))
			}
		}
		return
	}
	if drifted {
		result.Drifted++
	}
}

func (s *ReconcileService) refreshIndex(ctx context.Context, video *model.Video) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexVideo(ctx, video); err != nil {
		logger.Warn("Refresh video index failed", zap.Int64("video_id", video.ID), zap.Error(err))
	}
}

func (s *ReconcileService) invalidateCatalog(ctx context.Context, partnerID int64) {
	if s.catalog != nil {
		s.catalog.InvalidateCatalog(ctx, partnerID)
	}
}

func countersDiffer(a, b *model.Video) bool {
	return a.LikeCount != b.LikeCount ||
		a.SavesCount != b.SavesCount ||
		a.CommentsCount != b.CommentsCount
}
