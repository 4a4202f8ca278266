package model

import (
	"github.com/shopspring/decimal"
)

// NFT 类型
const (
	NftKindErc721  = 0
	NftKindErc1155 = 1
)

// 出售方式
const (
	SellKindFixedPrice = 0
	SellKindAuction    = 1
)

// Listing 挂单记录
// id 由自增主键分配, 全局唯一且严格递增, 永不复用
// active 置为 false 后为终态 (取消/成交/结拍), 不会再被激活
type Listing struct {
	Id            int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Seller        string          `gorm:"column:seller;type:varchar(42);not null;index:idx_seller" json:"seller"`
	NftAddress    string          `gorm:"column:nft_address;type:varchar(42);not null;index:idx_nft" json:"nft_address"`
	PayToken      string          `gorm:"column:pay_token;type:varchar(42);not null" json:"pay_token"` // 零地址表示原生币
	TokenId       string          `gorm:"column:token_id;type:varchar(128);not null" json:"token_id"`
	Quantity      int64           `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(65,0);not null" json:"price"` // 拍卖时为起拍价
	Deadline      int64           `gorm:"column:deadline;not null;default:0" json:"deadline"`    // 截止时间戳(秒), 0 表示不过期
	NftKind       int8            `gorm:"column:nft_kind;not null" json:"nft_kind"`
	SellKind      int8            `gorm:"column:sell_kind;not null" json:"sell_kind"`
	Active        bool            `gorm:"column:active;not null;index:idx_active" json:"active"`
	HighestBidder string          `gorm:"column:highest_bidder;type:varchar(42);not null;default:''" json:"highest_bidder"`
	HighestBid    decimal.Decimal `gorm:"column:highest_bid;type:decimal(65,0);not null;default:0" json:"highest_bid"`
	CreateTime    int64           `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime    int64           `gorm:"column:update_time;not null" json:"update_time"`
	// 升级兼容: 只允许在此追加新列, 已有列的顺序与类型不可变更
}

func (Listing) TableName() string {
	return ListingTableName()
}

func ListingTableName() string {
	return "market_listing"
}
