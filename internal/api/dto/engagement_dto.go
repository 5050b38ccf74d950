package dto

// ToggleResult 点赞/收藏切换结果，Count 为事务内读回的计数
type ToggleResult struct {
	VideoID int64 `json:"video_id"`
	Active  bool  `json:"active"`
	Count   int64 `json:"count"`
}
