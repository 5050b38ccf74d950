package repository

import (
	"context"
	"errors"
	"fmt"

	"foodscroll-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRelationConflict 并发插入同一 (user_id, video_id) 触发唯一约束
var ErrRelationConflict = errors.New("relation already exists")

type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// Toggle 在一个事务内翻转关系并维护计数：
//  1. 锁定视频行，同一视频上的切换串行执行
//  2. 删除关系行，未删到则插入
//  3. 计数 ±1，不低于 0
//  4. 读回计数
//
// 视频不存在返回 gorm.ErrRecordNotFound
func (r *EngagementRepository) Toggle(ctx context.Context, kind model.RelationKind, userID, videoID int64) (bool, int64, error) {
	var (
		active bool
		count  int64
	)
	column := kind.CounterColumn()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var video model.Video
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&video, videoID).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(kind.NewRow(0, 0))
		if result.Error != nil {
			return result.Error
		}

		delta := int64(-1)
		if result.RowsAffected == 0 {
			if err := tx.Create(kind.NewRow(userID, videoID)).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrRelationConflict
				}
				return err
			}
			delta = 1
		}

		if err := tx.Model(&model.Video{}).Where("id = ?", videoID).
			UpdateColumn(column, gorm.Expr(fmt.Sprintf("GREATEST(%s + ?, 0)", column), delta)).Error; err != nil {
			return err
		}

		active = delta > 0
		return tx.Model(&model.Video{}).Select(column).Where("id = ?", videoID).Scan(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return active, count, nil
}

// Exists 查询单个关系是否存在
func (r *EngagementRepository) Exists(ctx context.Context, kind model.RelationKind, userID, videoID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(kind.TableName()).
		Where("user_id = ? AND video_id = ?", userID, videoID).Count(&count).Error
	return count > 0, err
}

// ActiveVideoIDs 批量查询用户在给定视频中存在关系的视频 ID（一次查询）
func (r *EngagementRepository) ActiveVideoIDs(ctx context.Context, kind model.RelationKind, userID int64, videoIDs []int64) ([]int64, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Table(kind.TableName()).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &ids).Error
	return ids, err
}

// ListVideoIDsByUser 用户的关系视频 ID（最近的在前）
func (r *EngagementRepository) ListVideoIDsByUser(ctx context.Context, kind model.RelationKind, userID int64, skip, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Table(kind.TableName()).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Offset(skip).Limit(limit).
		Pluck("video_id", &ids).Error
	return ids, err
}

// CounterValue 读取视频当前的冗余计数
func (r *EngagementRepository) CounterValue(ctx context.Context, kind model.RelationKind, videoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select(kind.CounterColumn()).Where("id = ?", videoID).Scan(&count).Error
	return count, err
}
