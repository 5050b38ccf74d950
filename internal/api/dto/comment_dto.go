package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentInfo 评论信息（含作者昵称）
type CommentInfo struct {
	ID         int64     `json:"id"`
	VideoID    int64     `json:"video_id"`
	UserID     int64     `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments []CommentInfo `json:"comments"`
	Total    int           `json:"total"`
}
