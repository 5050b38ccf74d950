package dto

import "time"

// VideoCreateRequest 发布视频请求（视频文件已由上传服务存储）
type VideoCreateRequest struct {
	Title             string `json:"title" binding:"required,min=1,max=200"`
	Description       string `json:"description" binding:"required"`
	VideoURL          string `json:"video_url" binding:"required,url,max=500"`
	ThumbnailURL      string `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	ExternalOrderLink string `json:"external_order_link" binding:"omitempty,url,max=500"`
}

// OrderLinkRequest 更新外部下单链接
type OrderLinkRequest struct {
	ExternalOrderLink string `json:"external_order_link" binding:"omitempty,url,max=500"`
}

// PartnerBrief 视频中嵌套的商家简要信息
type PartnerBrief struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ShopName   string `json:"shop_name"`
	ProfilePic string `json:"profile_pic"`
}

// VideoInfo 视频信息
type VideoInfo struct {
	ID                int64         `json:"id"`
	PartnerID         int64         `json:"partner_id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	VideoURL          string        `json:"video_url"`
	ThumbnailURL      string        `json:"thumbnail_url"`
	ExternalOrderLink string        `json:"external_order_link,omitempty"`
	LikeCount         int64         `json:"like_count"`
	SavesCount        int64         `json:"saves_count"`
	CommentsCount     int64         `json:"comments_count"`
	CreatedAt         time.Time     `json:"created_at"`
	Partner           *PartnerBrief `json:"partner,omitempty"`
}

// FeedVideo 带当前用户互动状态的视频
type FeedVideo struct {
	VideoInfo
	IsLiked bool `json:"is_liked"`
	IsSaved bool `json:"is_saved"`
}

// FeedData 视频流分页数据，videos 为空表示已到末尾
type FeedData struct {
	Videos   []FeedVideo `json:"videos"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	HasMore  bool        `json:"has_more"`
}
