package repository

import (
	"context"

	"foodscroll-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 写入评论并把视频评论数 +1（同一事务）
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Video{}).Where("id = ?", comment.VideoID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete 删除作者本人的评论并把视频评论数 -1（同一事务）
// 评论不存在或不属于该作者时返回 gorm.ErrRecordNotFound
func (r *CommentRepository) Delete(ctx context.Context, commentID, userID int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", commentID, userID).First(&comment).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Comment{}, comment.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&model.Video{}).Where("id = ?", comment.VideoID).
			UpdateColumn("comments_count", gorm.Expr("GREATEST(comments_count - 1, 0)")).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByVideo 视频的全部评论（新的在前）
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, err
}
