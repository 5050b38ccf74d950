package dto

import "time"

// PartnerProfileUpdateRequest 商家资料更新请求，只更新传入的字段
type PartnerProfileUpdateRequest struct {
	ShopName    *string `json:"shop_name" binding:"omitempty,min=1,max=255"`
	ShopAddress *string `json:"shop_address" binding:"omitempty,min=1,max=500"`
	ProfilePic  *string `json:"profile_pic" binding:"omitempty,max=500"`
}

// PartnerProfile 商家公开资料（不含密码哈希）
type PartnerProfile struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ShopName    string    `json:"shop_name"`
	ShopAddress string    `json:"shop_address"`
	ProfilePic  string    `json:"profile_pic"`
	CreatedAt   time.Time `json:"created_at"`
}

// PartnerCatalog 商家主页：资料 + 全部视频
type PartnerCatalog struct {
	Partner PartnerProfile `json:"partner"`
	Videos  []VideoInfo    `json:"videos"`
}
