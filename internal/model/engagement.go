package model

import "time"

// RelationKind 互动关系类型
type RelationKind string

const (
	RelationLike RelationKind = "like"
	RelationSave RelationKind = "save"
)

// Valid 是否为已知类型
func (k RelationKind) Valid() bool {
	return k == RelationLike || k == RelationSave
}

// CounterColumn 返回 videos 表中对应的冗余计数列
func (k RelationKind) CounterColumn() string {
	if k == RelationSave {
		return "saves_count"
	}
	return "like_count"
}

// TableName 返回关系表名
func (k RelationKind) TableName() string {
	if k == RelationSave {
		return Save{}.TableName()
	}
	return Like{}.TableName()
}

// NewRow 构造关系行，用于插入或按条件删除
func (k RelationKind) NewRow(userID, videoID int64) interface{} {
	if k == RelationSave {
		return &Save{UserID: userID, VideoID: videoID}
	}
	return &Like{UserID: userID, VideoID: videoID}
}

// Like 点赞关系，(user_id, video_id) 唯一，行存在即为已点赞
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_likes_user_video,priority:1;comment:点赞用户ID" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_likes_user_video,priority:2;index:idx_likes_video_id;comment:被点赞视频ID" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`

	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}

// Save 收藏关系，(user_id, video_id) 唯一，行存在即为已收藏
type Save struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:收藏记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_saves_user_video,priority:1;index:idx_saves_user_created,priority:1;comment:收藏用户ID" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_saves_user_video,priority:2;index:idx_saves_video_id;comment:被收藏视频ID" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_saves_user_created,priority:2;comment:收藏时间" json:"created_at"`

	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Save) TableName() string {
	return "saves"
}
