package types

// ActivityFilterParams 市场事件查询过滤参数
type ActivityFilterParams struct {
	UserAddress   string `json:"user_address"`   // 用户地址 (作为 Maker 或 Taker)
	ListingId     int64  `json:"listing_id"`     // 挂单 ID
	ActivityTypes []int8 `json:"activity_types"` // 事件类型列表
	Page          int    `json:"page"`
	PageSize      int    `json:"page_size"`
}

type ActivityResp struct {
	Result interface{} `json:"result"`
	Count  int64       `json:"count"`
}
