package model

import "time"

// Partner 商家（视频上传者）模型
// 商家拥有的视频通过 videos.partner_id 反查，不在此冗余存储
type Partner struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:商家标识" json:"id"`
	Name        string    `gorm:"size:255;not null;comment:商家联系人" json:"name"`
	Email       string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	Password    string    `gorm:"size:255;not null;comment:密码哈希" json:"-"` // 由认证服务维护，这里不读不写
	ShopName    string    `gorm:"size:255;not null;comment:店铺名" json:"shop_name"`
	ShopAddress string    `gorm:"size:500;not null;comment:店铺地址" json:"shop_address"`
	ProfilePic  string    `gorm:"size:500;not null;default:'';comment:头像" json:"profile_pic"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (Partner) TableName() string {
	return "partners"
}
