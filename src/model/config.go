package model

// 费率精度: 10000 bps = 100%, 单边费率上限为一半 (5000 bps = 50%)
const (
	BpsMax    = int64(10000)
	FeeBpsCap = BpsMax / 2
)

// MarketConfig 市场全局配置单例 (id 固定为 1)
// owner 为唯一管理身份, treasury 为手续费接收地址
// 仅允许通过管理接口变更, 每次变更写一条带前后值的活动记录
type MarketConfig struct {
	Id           int64  `gorm:"column:id;primaryKey" json:"id"`
	Owner        string `gorm:"column:owner;type:varchar(42);not null" json:"owner"`
	Treasury     string `gorm:"column:treasury;type:varchar(42);not null" json:"treasury"`
	SellerFeeBps int64  `gorm:"column:seller_fee_bps;not null" json:"seller_fee_bps"`
	BuyerFeeBps  int64  `gorm:"column:buyer_fee_bps;not null" json:"buyer_fee_bps"`
	UpdateTime   int64  `gorm:"column:update_time;not null" json:"update_time"`
}

// MarketConfigId 单例行主键
const MarketConfigId = int64(1)

func (MarketConfig) TableName() string {
	return MarketConfigTableName()
}

func MarketConfigTableName() string {
	return "market_config"
}
