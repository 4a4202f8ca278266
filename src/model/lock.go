package model

import (
	"github.com/shopspring/decimal"
)

// LockedBalance 被超越竞拍者的可退余额
// 以 (user_address, pay_token) 为键, 不同支付资产独立累计、独立提取
type LockedBalance struct {
	Id          int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserAddress string          `gorm:"column:user_address;type:varchar(42);not null;uniqueIndex:uniq_user_token,priority:1" json:"user_address"`
	PayToken    string          `gorm:"column:pay_token;type:varchar(42);not null;uniqueIndex:uniq_user_token,priority:2" json:"pay_token"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(65,0);not null;default:0" json:"amount"`
	UpdateTime  int64           `gorm:"column:update_time;not null" json:"update_time"`
}

func (LockedBalance) TableName() string {
	return LockedBalanceTableName()
}

func LockedBalanceTableName() string {
	return "market_lock"
}
