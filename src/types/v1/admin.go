package types

// BlockUserParam 拉黑/解封请求参数
type BlockUserParam struct {
	CallerAddress string `json:"caller_address" binding:"required,address"` // 管理员地址
	UserAddress   string `json:"user_address" binding:"required,address"`   // 目标用户地址
}

// SetTreasuryParam 金库地址变更请求参数
type SetTreasuryParam struct {
	CallerAddress string `json:"caller_address" binding:"required,address"` // 管理员地址
	Treasury      string `json:"treasury" binding:"required,address"`       // 新金库地址
}

// SetTreasuryFeeParam 费率变更请求参数
type SetTreasuryFeeParam struct {
	CallerAddress string `json:"caller_address" binding:"required,address"` // 管理员地址
	FeeBps        int64  `json:"fee_bps"`                                   // 新费率 (bps)
}

// TransferOwnershipParam 管理权移交请求参数
type TransferOwnershipParam struct {
	CallerAddress string `json:"caller_address" binding:"required,address"` // 当前管理员地址
	NewOwner      string `json:"new_owner" binding:"required,address"`      // 新管理员地址
}

// TreasuryDataResp 市场配置详情
type TreasuryDataResp struct {
	Owner        string `json:"owner"`
	Treasury     string `json:"treasury"`
	SellerFeeBps int64  `json:"seller_fee_bps"`
	BuyerFeeBps  int64  `json:"buyer_fee_bps"`
}

// BlockStatusResp 黑名单状态
type BlockStatusResp struct {
	UserAddress string `json:"user_address"`
	Blocked     bool   `json:"blocked"`
}
