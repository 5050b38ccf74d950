package repository

import (
	"context"

	"foodscroll-go/internal/model"

	"gorm.io/gorm"
)

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) GetByID(ctx context.Context, id int64) (*model.Partner, error) {
	var partner model.Partner
	if err := r.db.WithContext(ctx).First(&partner, id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// GetByIDs 批量获取商家（视频流联表展示用，一次查询）
func (r *PartnerRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Partner, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var partners []model.Partner
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&partners).Error
	return partners, err
}

// Update 更新商家资料字段
func (r *PartnerRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Partner, error) {
	result := r.db.WithContext(ctx).Model(&model.Partner{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
