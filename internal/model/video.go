package model

import "time"

// Video 视频模型
// LikeCount / SavesCount / CommentsCount 为冗余计数，必须与关系表行数一致
type Video struct {
	ID                int64     `gorm:"primaryKey;autoIncrement;index:idx_videos_created_id,priority:2;comment:视频标识" json:"id"`
	PartnerID         int64     `gorm:"not null;index:idx_videos_partner_created,priority:1;comment:所属商家ID" json:"partner_id"`
	Title             string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description       string    `gorm:"type:text;not null;default:'';comment:视频描述" json:"description"`
	VideoURL          string    `gorm:"size:500;not null;comment:视频播放地址" json:"video_url"`
	ThumbnailURL      string    `gorm:"size:500;not null;comment:视频封面地址" json:"thumbnail_url"`
	ExternalOrderLink string    `gorm:"size:500;not null;default:'';comment:外部下单链接" json:"external_order_link"`
	LikeCount         int64     `gorm:"not null;default:0;check:chk_videos_like_count,like_count >= 0;comment:点赞数" json:"like_count"`
	SavesCount        int64     `gorm:"not null;default:0;check:chk_videos_saves_count,saves_count >= 0;comment:收藏数" json:"saves_count"`
	CommentsCount     int64     `gorm:"not null;default:0;check:chk_videos_comments_count,comments_count >= 0;comment:评论数" json:"comments_count"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index:idx_videos_created_id,priority:1;index:idx_videos_partner_created,priority:2;comment:创建时间" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Partner Partner `gorm:"foreignKey:PartnerID" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}
