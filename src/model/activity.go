package model

import (
	"github.com/shopspring/decimal"
)

// 活动(事件)类型, 追加式日志
const (
	ActivityListNft              = 1
	ActivityCancelListNft        = 2
	ActivityBuyNft               = 3
	ActivityPlaceBidNft          = 4
	ActivityWithdrawLockAmount   = 5
	ActivityBlockUser            = 6
	ActivityUnblockUser          = 7
	ActivityTreasurySet          = 8
	ActivityTreasurySellerFee    = 9
	ActivityTreasuryBuyerFee     = 10
	ActivityOwnershipTransferred = 11
)

// Activity 市场事件日志, 只追加不修改
// Maker 为动作发起人视角的主方 (买家/竞拍人/管理员), Taker 为对手方 (卖家/前一竞拍人)
// OldValue/NewValue 承载配置变更前后值与拍卖起拍价等扩展语义
type Activity struct {
	Id           int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ActivityType int8            `gorm:"column:activity_type;not null;index:idx_activity_type" json:"activity_type"`
	Maker        string          `gorm:"column:maker;type:varchar(42);not null;default:'';index:idx_maker" json:"maker"`
	Taker        string          `gorm:"column:taker;type:varchar(42);not null;default:''" json:"taker"`
	NftAddress   string          `gorm:"column:nft_address;type:varchar(42);not null;default:''" json:"nft_address"`
	TokenId      string          `gorm:"column:token_id;type:varchar(128);not null;default:''" json:"token_id"`
	PayToken     string          `gorm:"column:pay_token;type:varchar(42);not null;default:''" json:"pay_token"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(65,0);not null;default:0" json:"price"`
	Quantity     int64           `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ListingId    int64           `gorm:"column:listing_id;not null;default:0;index:idx_listing" json:"listing_id"`
	OldValue     string          `gorm:"column:old_value;type:varchar(128);not null;default:''" json:"old_value"`
	NewValue     string          `gorm:"column:new_value;type:varchar(128);not null;default:''" json:"new_value"`
	EventTime    int64           `gorm:"column:event_time;not null" json:"event_time"`
}

func (Activity) TableName() string {
	return ActivityTableName()
}

func ActivityTableName() string {
	return "market_activity"
}
