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

var (
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentNoPermission = errors.New("只能删除自己的评论")
)

type CommentService struct {
	commentRepo CommentStore
	videoRepo   VideoStore
	userRepo    UserStore
	catalog     CatalogInvalidator
}

func NewCommentService(commentRepo CommentStore, videoRepo VideoStore, userRepo UserStore, catalog CatalogInvalidator) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		catalog:     catalog,
	}
}

// AddComment 发表评论，视频评论数 +1
func (s *CommentService) AddComment(ctx context.Context, userID, videoID int64, text string) (*dto.CommentInfo, error) {
	video, err := s.loadVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		VideoID: videoID,
		UserID:  userID,
		Text:    text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			// 检查之后视频被删除
			return nil, ErrVideoNotFound
		}
		return nil, storeErr(err)
	}
	s.invalidateCatalog(ctx, video.PartnerID)

	names, err := s.authorNames(ctx, []int64{userID})
	if err != nil {
		// 评论已写入，昵称缺失不影响结果
		logger.Warn("Load comment author failed", zap.Int64("user_id", userID), zap.Error(err))
	}

	info := toCommentInfo(comment, names)
	return &info, nil
}

// DeleteComment 删除评论（仅作者本人），视频评论数 -1
func (s *CommentService) DeleteComment(ctx context.Context, principal authz.Principal, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return storeErr(err)
	}

	if !authz.IsAuthor(principal, comment.UserID) {
		return ErrCommentNoPermission
	}

	if _, err := s.commentRepo.Delete(ctx, commentID, principal.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 并发删除
			return ErrCommentNotFound
		}
		return storeErr(err)
	}

	logger.Info("Comment deleted",
		zap.Int64("comment_id", commentID),
		zap.Int64("video_id", comment.VideoID),
		zap.Int64("user_id", principal.ID),
	)

	if s.catalog != nil {
		if video, err := s.videoRepo.GetByID(ctx, comment.VideoID); err == nil {
			s.invalidateCatalog(ctx, video.PartnerID)
		}
	}
	return nil
}

// ListComments 视频评论列表（新的在前），作者昵称批量查询
func (s *CommentService) ListComments(ctx context.Context, videoID int64) (*dto.CommentListData, error) {
	if _, err := s.loadVideo(ctx, videoID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, storeErr(err)
	}

	userIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]struct{}, len(comments))
	for i := range comments {
		if _, ok := seen[comments[i].UserID]; !ok {
			seen[comments[i].UserID] = struct{}{}
			userIDs = append(userIDs, comments[i].UserID)
		}
	}

	names, err := s.authorNames(ctx, userIDs)
	if err != nil {
		return nil, storeErr(err)
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, toCommentInfo(&comments[i], names))
	}

	return &dto.CommentListData{
		Comments: items,
		Total:    len(items),
	}, nil
}

func (s *CommentService) loadVideo(ctx context.Context, videoID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, storeErr(err)
	}
	return video, nil
}

// invalidateCatalog 评论数变化后清理商家主页缓存
func (s *CommentService) invalidateCatalog(ctx context.Context, partnerID int64) {
	if s.catalog != nil {
		s.catalog.InvalidateCatalog(ctx, partnerID)
	}
}

func (s *CommentService) authorNames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return names, err
	}
	for i := range users {
		names[users[i].ID] = users[i].Name
	}
	return names, nil
}

func toCommentInfo(c *model.Comment, names map[int64]string) dto.CommentInfo {
	return dto.CommentInfo{
		ID:         c.ID,
		VideoID:    c.VideoID,
		UserID:     c.UserID,
		AuthorName: names[c.UserID],
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}
