package model

// UserBlock 黑名单记录
// 在表中存在即表示被拉黑, 拉黑/解封均为幂等操作
type UserBlock struct {
	Id          int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserAddress string `gorm:"column:user_address;type:varchar(42);not null;uniqueIndex:uniq_block_user" json:"user_address"`
	BlockTime   int64  `gorm:"column:block_time;not null" json:"block_time"`
}

func (UserBlock) TableName() string {
	return UserBlockTableName()
}

func UserBlockTableName() string {
	return "market_user_block"
}
