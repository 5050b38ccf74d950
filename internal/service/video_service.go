package service

import (
	"context"
	"errors"

	"foodscroll-go/internal/api/dto"
	"foodscroll-go/internal/authz"
	"foodscroll-go/internal/model"
	"foodscroll-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogInvalidator 视频变更后清理商家主页缓存
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context, partnerID int64)
}

type VideoService struct {
	videoRepo VideoStore
	catalog   CatalogInvalidator
	assets    AssetVerifier
	indexer   VideoIndexer
}

func NewVideoService(videoRepo VideoStore, catalog CatalogInvalidator, assets AssetVerifier, indexer VideoIndexer) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		catalog:   catalog,
		assets:    assets,
		indexer:   indexer,
	}
}

// AddVideo 商家发布视频（视频文件已由上传服务写入对象存储）
func (s *VideoService) AddVideo(ctx context.Context, principal authz.Principal, req *dto.VideoCreateRequest) (*dto.VideoInfo, error) {
	if !authz.Can(principal, authz.CapPublishVideo) {
		return nil, ErrVideoNoPermission
	}

	thumbnail := req.ThumbnailURL
	if thumbnail == "" {
		thumbnail = req.VideoURL
	}

	if err := s.verifyAssets(ctx, req.VideoURL, thumbnail); err != nil {
		return nil, err
	}

	video := &model.Video{
		PartnerID:         principal.ID,
		Title:             req.Title,
		Description:       req.Description,
		VideoURL:          req.VideoURL,
		ThumbnailURL:      thumbnail,
		ExternalOrderLink: req.ExternalOrderLink,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, storeErr(err)
	}

	logger.Info("Video published",
		zap.Int64("video_id", video.ID),
		zap.Int64("partner_id", video.PartnerID),
	)

	s.afterVideoChanged(ctx, video)
	return toVideoInfo(video, nil), nil
}

// SetOrderLink 更新视频外部下单链接（仅所属商家）
func (s *VideoService) SetOrderLink(ctx context.Context, principal authz.Principal, videoID int64, link string) (*dto.VideoInfo, error) {
	if !authz.Can(principal, authz.CapPublishVideo) {
		return nil, ErrVideoNoPermission
	}

	video, err := s.videoRepo.UpdateOrderLink(ctx, videoID, principal.ID, link)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, storeErr(err)
	}

	s.afterVideoChanged(ctx, video)
	return toVideoInfo(video, nil), nil
}

func (s *VideoService) verifyAssets(ctx context.Context, urls ...string) error {
	if s.assets == nil {
		return nil
	}
	for _, u := range urls {
		ok, err := s.assets.Exists(ctx, u)
		if err != nil {
			// 对象存储不可达时不阻塞发布
			logger.Warn("Asset verification skipped", zap.String("url", u), zap.Error(err))
			continue
		}
		if !ok {
			return ErrInvalidAsset
		}
	}
	return nil
}

func (s *VideoService) afterVideoChanged(ctx context.Context, video *model.Video) {
	if s.catalog != nil {
		s.catalog.InvalidateCatalog(ctx, video.PartnerID)
	}
	if s.indexer != nil {
		if err := s.indexer.IndexVideo(ctx, video); err != nil {
			logger.Warn("Index video failed", zap.Int64("video_id", video.ID), zap.Error(err))
		}
	}
}

// toVideoInfo 将 model.Video 转换为 dto.VideoInfo
func toVideoInfo(video *model.Video, partner *dto.PartnerBrief) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:                video.ID,
		PartnerID:         video.PartnerID,
		Title:             video.Title,
		Description:       video.Description,
		VideoURL:          video.VideoURL,
		ThumbnailURL:      video.ThumbnailURL,
		ExternalOrderLink: video.ExternalOrderLink,
		LikeCount:         video.LikeCount,
		SavesCount:        video.SavesCount,
		CommentsCount:     video.CommentsCount,
		CreatedAt:         video.CreatedAt,
		Partner:           partner,
	}
}

func toPartnerBrief(p *model.Partner) *dto.PartnerBrief {
	return &dto.PartnerBrief{
		ID:         p.ID,
		Name:       p.Name,
		ShopName:   p.ShopName,
		ProfilePic: p.ProfilePic,
	}
}
