package dto

// SearchVideoRequest 视频搜索请求（分页参数由 page/limit 单独解析）
type SearchVideoRequest struct {
	Keyword string `form:"q" binding:"required,min=1,max=100"`
}

// SearchVideoData 搜索结果
type SearchVideoData struct {
	Videos   []VideoInfo `json:"videos"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Source   string      `json:"source"` // es | db
}
