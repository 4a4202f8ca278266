package types

import (
	"github.com/shopspring/decimal"
)

// ListNftParam 挂单请求参数
type ListNftParam struct {
	CallerAddress string          `json:"caller_address" binding:"required,address"` // 卖家地址
	NftAddress    string          `json:"nft_address" binding:"required,address"`    // NFT 合约地址
	PayToken      string          `json:"pay_token"`                                 // 支付资产, 空/零地址为原生币
	TokenId       string          `json:"token_id" binding:"required"`               // Token ID
	Price         decimal.Decimal `json:"price"`                                     // 一口价/起拍价
	Quantity      int64           `json:"quantity"`                                  // 数量, ERC721 固定为 1
	Duration      int64           `json:"duration"`                                  // 有效期(秒), 0 表示不过期
	NftKind       int8            `json:"nft_kind"`                                  // 0: ERC721, 1: ERC1155
	SellKind      int8            `json:"sell_kind"`                                 // 0: 一口价, 1: 拍卖
}

// CancelListingParam 撤单请求参数
type CancelListingParam struct {
	CallerAddress string `json:"caller_address" binding:"required,address"` // 卖家地址
}

// ListingInfo 挂单详情
type ListingInfo struct {
	Id            int64           `json:"id"`
	Seller        string          `json:"seller"`
	NftAddress    string          `json:"nft_address"`
	PayToken      string          `json:"pay_token"`
	TokenId       string          `json:"token_id"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Deadline      int64           `json:"deadline"`
	NftKind       int8            `json:"nft_kind"`
	SellKind      int8            `json:"sell_kind"`
	Active        bool            `json:"active"`
	HighestBidder string          `json:"highest_bidder,omitempty"`
	HighestBid    decimal.Decimal `json:"highest_bid"`
	CreateTime    int64           `json:"create_time"`
}

type ListingsResp struct {
	Result interface{} `json:"result"`
	Count  int64       `json:"count"`
}
