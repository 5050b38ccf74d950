package model

import "time"

// User 普通用户模型（只读，用于评论作者展示）
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Name      string    `gorm:"size:255;not null;comment:昵称" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	Password  string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
