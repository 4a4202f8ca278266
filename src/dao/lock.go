package dao

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

// GetLockedBalance 查询某用户在某支付资产下的可退余额
// 无记录时返回零值
func (d *Dao) GetLockedBalance(ctx context.Context, userAddr string, payToken string) (decimal.Decimal, error) {
	var lock model.LockedBalance
	db := d.DB.WithContext(ctx).Table(model.LockedBalanceTableName()).
		Where("user_address = ? and pay_token = ?", userAddr, payToken).
		Find(&lock)
	if db.Error != nil {
		return decimal.Zero, errors.Wrap(db.Error, "failed on get locked balance")
	}
	if lock.Id == 0 {
		return decimal.Zero, nil
	}
	return lock.Amount, nil
}

// QueryUserLocks 查询某用户全部非零可退余额 (跨支付资产)
func (d *Dao) QueryUserLocks(ctx context.Context, userAddr string) ([]model.LockedBalance, error) {
	var locks []model.LockedBalance
	if err := d.DB.WithContext(ctx).Table(model.LockedBalanceTableName()).
		Where("user_address = ? and amount > 0", userAddr).
		Find(&locks).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query user locks")
	}
	return locks, nil
}
