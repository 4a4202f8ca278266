package types

import (
	"github.com/shopspring/decimal"
)

// BuyNftParam 一口价购买请求参数
// Amount 为买家支付数量, 需覆盖 价格+买家侧手续费
type BuyNftParam struct {
	CallerAddress string          `json:"caller_address" binding:"required,address"` // 买家地址
	Amount        decimal.Decimal `json:"amount"`                                    // 支付数量
}

// PlaceBidParam 拍卖出价请求参数
// 实际出价 = Amount + 出价人在该资产下的可退余额
type PlaceBidParam struct {
	CallerAddress string          `json:"caller_address" binding:"required,address"` // 出价人地址
	Amount        decimal.Decimal `json:"amount"`                                    // 新增押金数量
}

// ReleaseNftParam 结拍请求参数
type ReleaseNftParam struct {
	CallerAddress string `json:"caller_address" binding:"required,address"` // 卖家地址
}

// WithdrawParam 押金提取请求参数
type WithdrawParam struct {
	CallerAddress string `json:"caller_address" binding:"required,address"` // 提取人地址
	PayToken      string `json:"pay_token"`                                 // 支付资产, 空/零地址为原生币
}

// WithdrawResp 押金提取结果
type WithdrawResp struct {
	Amount decimal.Decimal `json:"amount"` // 提取数量
}

// LockInfo 可退余额详情
type LockInfo struct {
	PayToken string          `json:"pay_token"`
	Amount   decimal.Decimal `json:"amount"`
}

type LocksResp struct {
	Result interface{} `json:"result"`
}
