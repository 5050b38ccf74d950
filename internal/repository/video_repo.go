package repository

import (
	"context"

	"foodscroll-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDs 批量获取视频，返回顺序不保证
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// Create 创建视频记录
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// ListFeed 按创建时间倒序分页，时间相同按 ID 倒序保证分页稳定
func (r *VideoRepository) ListFeed(ctx context.Context, skip, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(skip).Limit(limit).
		Find(&videos).Error
	return videos, err
}

// ListByPartner 商家全部视频（新的在前）
func (r *VideoRepository) ListByPartner(ctx context.Context, partnerID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").Order("id DESC").
		Find(&videos).Error
	return videos, err
}

// UpdateOrderLink 更新外部下单链接（仅所属商家）
func (r *VideoRepository) UpdateOrderLink(ctx context.Context, videoID, partnerID int64, link string) (*model.Video, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ? AND partner_id = ?", videoID, partnerID).
		Update("external_order_link", link)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, videoID)
}

// Search 标题/描述模糊搜索（ES 不可用时的降级路径）
func (r *VideoRepository) Search(ctx context.Context, keyword string, skip, limit int) ([]model.Video, int64, error) {
	pattern := "%" + keyword + "%"
	query := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Order("id DESC").
		Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListIDsAfter 按 ID 游标遍历视频，用于全量对账与重建索引
func (r *VideoRepository) ListIDsAfter(ctx context.Context, afterID int64, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id > ?", afterID).
		Order("id ASC").Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// Recount 由关系表重新计算三个冗余计数，返回对账前后的视频快照
func (r *VideoRepository) Recount(ctx context.Context, videoID int64) (before, after *model.Video, err error) {
	before, after = &model.Video{}, &model.Video{}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(before, videoID).Error; err != nil {
			return err
		}

		if err := tx.Exec(
			"UPDATE videos SET "+
				"like_count = (SELECT COUNT(*) FROM likes WHERE video_id = ?), "+
				"saves_count = (SELECT COUNT(*) FROM saves WHERE video_id = ?), "+
				"comments_count = (SELECT COUNT(*) FROM comments WHERE video_id = ?) "+
				"WHERE id = ?",
			videoID, videoID, videoID, videoID,
		).Error; err != nil {
			return err
		}

		return tx.First(after, videoID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}
