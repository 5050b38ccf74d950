package service

import (
	"context"

	"foodscroll-go/internal/api/dto"
	"foodscroll-go/internal/config"
	"foodscroll-go/internal/model"

	"golang.org/x/sync/errgroup"
)

type FeedService struct {
	videoRepo       VideoStore
	partnerRepo     PartnerStore
	engagementRepo  EngagementStore
	defaultPageSize int
	maxPageSize     int
}

func NewFeedService(videoRepo VideoStore, partnerRepo PartnerStore, engagementRepo EngagementStore, cfg config.FeedConfig) *FeedService {
	return &FeedService{
		videoRepo:       videoRepo,
		partnerRepo:     partnerRepo,
		engagementRepo:  engagementRepo,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}
}

// GetFeed 视频流：按创建时间倒序分页，并标注当前用户的点赞/收藏状态
// 空页表示没有更多内容
func (s *FeedService) GetFeed(ctx context.Context, viewerID int64, page, pageSize int) (*dto.FeedData, error) {
	page, pageSize = normalizePage(page, pageSize, s.defaultPageSize, s.maxPageSize)

	videos, err := s.videoRepo.ListFeed(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, storeErr(err)
	}

	items, err := s.hydrate(ctx, viewerID, videos)
	if err != nil {
		return nil, err
	}

	return &dto.FeedData{
		Videos:   items,
		Page:     page,
		PageSize: pageSize,
		HasMore:  len(videos) == pageSize,
	}, nil
}

// ListSaved 当前用户收藏的视频（最近收藏的在前）
func (s *FeedService) ListSaved(ctx context.Context, viewerID int64, page, pageSize int) (*dto.FeedData, error) {
	page, pageSize = normalizePage(page, pageSize, s.defaultPageSize, s.maxPageSize)

	ids, err := s.engagementRepo.ListVideoIDsByUser(ctx, model.RelationSave, viewerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, storeErr(err)
	}

	found, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr(err)
	}

	// 按收藏顺序排列
	byID := make(map[int64]model.Video, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	videos := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}

	items, err := s.hydrate(ctx, viewerID, videos)
	if err != nil {
		return nil, err
	}

	return &dto.FeedData{
		Videos:   items,
		Page:     page,
		PageSize: pageSize,
		HasMore:  len(ids) == pageSize,
	}, nil
}

// hydrate 批量联表：点赞、收藏、商家各一次查询，与页大小无关
func (s *FeedService) hydrate(ctx context.Context, viewerID int64, videos []model.Video) ([]dto.FeedVideo, error) {
	items := make([]dto.FeedVideo, 0, len(videos))
	if len(videos) == 0 {
		return items, nil
	}

	videoIDs := make([]int64, 0, len(videos))
	partnerIDs := make([]int64, 0, len(videos))
	seenPartner := make(map[int64]struct{}, len(videos))
	for i := range videos {
		videoIDs = append(videoIDs, videos[i].ID)
		if _, ok := seenPartner[videos[i].PartnerID]; !ok {
			seenPartner[videos[i].PartnerID] = struct{}{}
			partnerIDs = append(partnerIDs, videos[i].PartnerID)
		}
	}

	var (
		likedIDs []int64
		savedIDs []int64
		partners []model.Partner
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likedIDs, err = s.engagementRepo.ActiveVideoIDs(gctx, model.RelationLike, viewerID, videoIDs)
		return err
	})
	g.Go(func() error {
		var err error
		savedIDs, err = s.engagementRepo.ActiveVideoIDs(gctx, model.RelationSave, viewerID, videoIDs)
		return err
	})
	g.Go(func() error {
		var err error
		partners, err = s.partnerRepo.GetByIDs(gctx, partnerIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr(err)
	}

	liked := toIDSet(likedIDs)
	saved := toIDSet(savedIDs)
	partnerByID := make(map[int64]*dto.PartnerBrief, len(partners))
	for i := range partners {
		partnerByID[partners[i].ID] = toPartnerBrief(&partners[i])
	}

	for i := range videos {
		v := &videos[i]
		items = append(items, dto.FeedVideo{
			VideoInfo: *toVideoInfo(v, partnerByID[v.PartnerID]),
			IsLiked:   liked[v.ID],
			IsSaved:   saved[v.ID],
		})
	}
	return items, nil
}

func toIDSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
