package service

import (
	"context"
	"errors"
	"strconv"

	"foodscroll-go/internal/api/dto"
	"foodscroll-go/internal/authz"
	"foodscroll-go/internal/model"
	"foodscroll-go/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	ErrPartnerNotFound     = errors.New("商家不存在")
	ErrProfileNoPermission = errors.New("只能修改自己的商家资料")
)

type PartnerService struct {
	partnerRepo PartnerStore
	videoRepo   VideoStore
	cache       CatalogCache
	group       singleflight.Group
}

func NewPartnerService(partnerRepo PartnerStore, videoRepo VideoStore, cache CatalogCache) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		videoRepo:   videoRepo,
		cache:       cache,
	}
}

// GetPartnerVideos 商家主页：资料 + 全部视频（公开，不带互动状态）
func (s *PartnerService) GetPartnerVideos(ctx context.Context, partnerID int64) (*dto.PartnerCatalog, error) {
	if s.cache != nil {
		catalog, ok, err := s.cache.Get(ctx, partnerID)
		if err != nil {
			logger.Warn("Read partner catalog cache failed", zap.Int64("partner_id", partnerID), zap.Error(err))
		} else if ok {
			return catalog, nil
		}
	}

	// 同一商家并发未命中时只回源一次
	// 回源结果由所有等待者共享，不随首个请求取消
	fillCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(strconv.FormatInt(partnerID, 10), func() (interface{}, error) {
		catalog, err := s.loadCatalog(fillCtx, partnerID)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(fillCtx, partnerID, catalog); err != nil {
				logger.Warn("Write partner catalog cache failed", zap.Int64("partner_id", partnerID), zap.Error(err))
			}
		}
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.PartnerCatalog), nil
}

func (s *PartnerService) loadCatalog(ctx context.Context, partnerID int64) (*dto.PartnerCatalog, error) {
	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, storeErr(err)
	}

	videos, err := s.videoRepo.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, storeErr(err)
	}

	return &dto.PartnerCatalog{
		Partner: *toPartnerProfile(partner),
		Videos:  toVideoInfos(videos),
	}, nil
}

// UpdateProfile 商家更新自己的店铺资料，只更新传入的字段
func (s *PartnerService) UpdateProfile(ctx context.Context, principal authz.Principal, partnerID int64, req *dto.PartnerProfileUpdateRequest) (*dto.PartnerProfile, error) {
	if !authz.IsPartnerSelf(principal, partnerID) {
		return nil, ErrProfileNoPermission
	}

	updates := make(map[string]interface{})
	if req.ShopName != nil {
		updates["shop_name"] = *req.ShopName
	}
	if req.ShopAddress != nil {
		updates["shop_address"] = *req.ShopAddress
	}
	if req.ProfilePic != nil {
		updates["profile_pic"] = *req.ProfilePic
	}

	var (
		partner *model.Partner
		err     error
	)
	if len(updates) == 0 {
		partner, err = s.partnerRepo.GetByID(ctx, partnerID)
	} else {
		partner, err = s.partnerRepo.Update(ctx, partnerID, updates)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, storeErr(err)
	}

	if len(updates) > 0 {
		logger.Info("Partner profile updated", zap.Int64("partner_id", partnerID), zap.Int("fields", len(updates)))
		s.InvalidateCatalog(ctx, partnerID)
	}

	return toPartnerProfile(partner), nil
}

// InvalidateCatalog 清理商家主页缓存
func (s *PartnerService) InvalidateCatalog(ctx context.Context, partnerID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, partnerID); err != nil {
		logger.Warn("Invalidate partner catalog cache failed", zap.Int64("partner_id", partnerID), zap.Error(err))
	}
}

func toPartnerProfile(p *model.Partner) *dto.PartnerProfile {
	return &dto.PartnerProfile{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		ShopName:    p.ShopName,
		ShopAddress: p.ShopAddress,
		ProfilePic:  p.ProfilePic,
		CreatedAt:   p.CreatedAt,
	}
}
