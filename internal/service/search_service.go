package service

import (
	"context"

	"foodscroll-go/internal/api/dto"
	"foodscroll-go/internal/model"
	"foodscroll-go/pkg/logger"

	"go.uber.org/zap"
)

const (
	SearchSourceES = "es"
	SearchSourceDB = "db"
)

type SearchService struct {
	videoRepo VideoStore
	searcher  VideoSearcher
}

// NewSearchService searcher 为 nil 时直接走数据库
func NewSearchService(videoRepo VideoStore, searcher VideoSearcher) *SearchService {
	return &SearchService{
		videoRepo: videoRepo,
		searcher:  searcher,
	}
}

// SearchVideos 视频搜索：优先 ES，失败降级到数据库模糊匹配
func (s *SearchService) SearchVideos(ctx context.Context, keyword string, page, pageSize int) (*dto.SearchVideoData, error) {
	page, pageSize = normalizePage(page, pageSize, defaultPageSize, maxPageSize)
	skip := (page - 1) * pageSize

	if s.searcher != nil {
		data, err := s.searchES(ctx, keyword, skip, pageSize)
		if err == nil {
			data.Page, data.PageSize = page, pageSize
			return data, nil
		}
		logger.Warn("ES search failed, fallback to database", zap.String("keyword", keyword), zap.Error(err))
	}

	videos, total, err := s.videoRepo.Search(ctx, keyword, skip, pageSize)
	if err != nil {
		return nil, storeErr(err)
	}

	return &dto.SearchVideoData{
		Videos:   toVideoInfos(videos),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Source:   SearchSourceDB,
	}, nil
}

func (s *SearchService) searchES(ctx context.Context, keyword string, from, size int) (*dto.SearchVideoData, error) {
	ids, total, err := s.searcher.SearchVideoIDs(ctx, keyword, from, size)
	if err != nil {
		return nil, err
	}

	found, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 保持 ES 相关度顺序，跳过索引中残留但已删除的视频
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

	return &dto.SearchVideoData{
		Videos: toVideoInfos(videos),
		Total:  total,
		Source: SearchSourceES,
	}, nil
}

func toVideoInfos(videos []model.Video) []dto.VideoInfo {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i], nil))
	}
	return items
}
