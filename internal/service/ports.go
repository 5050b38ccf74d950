package service

import (
	"context"

	"foodscroll-go/internal/api/dto"
	infraKafka "foodscroll-go/internal/infra/kafka"
	"foodscroll-go/internal/model"
)

// 以下接口由 repository 与 infra 包实现，业务层只依赖接口

type VideoStore interface {
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Video, error)
	Create(ctx context.Context, video *model.Video) error
	ListFeed(ctx context.Context, skip, limit int) ([]model.Video, error)
	ListByPartner(ctx context.Context, partnerID int64) ([]model.Video, error)
	UpdateOrderLink(ctx context.Context, videoID, partnerID int64, link string) (*model.Video, error)
	Search(ctx context.Context, keyword string, skip, limit int) ([]model.Video, int64, error)
	ListIDsAfter(ctx context.Context, afterID int64, limit int) ([]int64, error)
	Recount(ctx context.Context, videoID int64) (before, after *model.Video, err error)
}

type PartnerStore interface {
	GetByID(ctx context.Context, id int64) (*model.Partner, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Partner, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Partner, error)
}

type UserStore interface {
	GetByIDs(ctx context.Context, ids []int64) ([]model.User, error)
}

type EngagementStore interface {
	Toggle(ctx context.Context, kind model.RelationKind, userID, videoID int64) (bool, int64, error)
	Exists(ctx context.Context, kind model.RelationKind, userID, videoID int64) (bool, error)
	ActiveVideoIDs(ctx context.Context, kind model.RelationKind, userID int64, videoIDs []int64) ([]int64, error)
	ListVideoIDsByUser(ctx context.Context, kind model.RelationKind, userID int64, skip, limit int) ([]int64, error)
	CounterValue(ctx context.Context, kind model.RelationKind, videoID int64) (int64, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Delete(ctx context.Context, commentID, userID int64) (*model.Comment, error)
	ListByVideo(ctx context.Context, videoID int64) ([]model.Comment, error)
}

// EventPublisher 互动事件发布（Kafka）
type EventPublisher interface {
	PublishEngagement(ctx context.Context, event *infraKafka.EngagementEvent) error
}

// DirtyTracker 记录计数可能漂移的视频，供对账任务消费（Redis Set）
type DirtyTracker interface {
	MarkDirty(ctx context.Context, videoID int64) error
	PopDirty(ctx context.Context, n int) ([]int64, error)
	Size(ctx context.Context) (int64, error)
}

// CatalogCache 商家主页缓存（Redis）
type CatalogCache interface {
	Get(ctx context.Context, partnerID int64) (*dto.PartnerCatalog, bool, error)
	Set(ctx context.Context, partnerID int64, catalog *dto.PartnerCatalog) error
	Invalidate(ctx context.Context, partnerID int64) error
}

// AssetVerifier 校验上传服务产出的资源地址（MinIO）
type AssetVerifier interface {
	Exists(ctx context.Context, rawURL string) (bool, error)
}

// VideoIndexer 视频写入搜索索引（Elasticsearch）
type VideoIndexer interface {
	IndexVideo(ctx context.Context, video *model.Video) error
}

// VideoSearcher 视频全文检索（Elasticsearch）
type VideoSearcher interface {
	SearchVideoIDs(ctx context.Context, keyword string, from, size int) ([]int64, int64, error)
}
