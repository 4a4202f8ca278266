package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

// lockForUpdate 行级锁 (仅 mysql, sqlite 无行锁走单写者事务)
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// loadListingForUpdate 事务内取 listing 并加锁
// 不存在或已终态的挂单统一返回 ErrNftNotListed
func loadListingForUpdate(tx *gorm.DB, listingId int64) (*model.Listing, error) {
	var listing model.Listing
	db := lockForUpdate(tx).Table(model.ListingTableName()).
		Where("id = ?", listingId).
		Find(&listing)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on load listing")
	}
	if listing.Id == 0 || !listing.Active {
		return nil, errors.Wrapf(errcode.ErrNftNotListed, "listing %d", listingId)
	}
	return &listing, nil
}

// loadConfigForUpdate 事务内取市场配置单例并加锁
func loadConfigForUpdate(tx *gorm.DB) (*model.MarketConfig, error) {
	var cfg model.MarketConfig
	db := lockForUpdate(tx).Table(model.MarketConfigTableName()).
		Where("id = ?", model.MarketConfigId).
		Find(&cfg)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on load market config")
	}
	if cfg.Id == 0 {
		return nil, errors.Wrap(errcode.ErrUnexpected, "market config not bootstrapped")
	}
	return &cfg, nil
}

// feeOf 按 bps 计算费用, 基础单位整数向下取整
func feeOf(price decimal.Decimal, bps int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(bps)).Div(decimal.NewFromInt(model.BpsMax)).Floor()
}

// insertActivity 事务内落一条事件记录
func insertActivity(tx *gorm.DB, activity *model.Activity) error {
	if err := tx.Table(model.ActivityTableName()).Create(activity).Error; err != nil {
		return errors.Wrap(err, "failed on insert activity")
	}
	return nil
}

// creditLock 事务内为用户累加某支付资产的可退余额
func creditLock(tx *gorm.DB, userAddr string, payToken string, amount decimal.Decimal, now int64) error {
	var lock model.LockedBalance
	db := lockForUpdate(tx).Table(model.LockedBalanceTableName()).
		Where("user_address = ? and pay_token = ?", userAddr, payToken).
		Find(&lock)
	if db.Error != nil {
		return errors.Wrap(db.Error, "failed on load locked balance")
	}
	if lock.Id == 0 {
		lock = model.LockedBalance{
			UserAddress: userAddr,
			PayToken:    payToken,
			Amount:      amount,
			UpdateTime:  now,
		}
		if err := tx.Table(model.LockedBalanceTableName()).Create(&lock).Error; err != nil {
			return errors.Wrap(err, "failed on create locked balance")
		}
		return nil
	}
	if err := tx.Table(model.LockedBalanceTableName()).
		Where("id = ?", lock.Id).
		Updates(map[string]interface{}{
			"amount":      lock.Amount.Add(amount),
			"update_time": now,
		}).Error; err != nil {
		return errors.Wrap(err, "failed on credit locked balance")
	}
	return nil
}

// consumeLock 事务内读出并清零用户在某支付资产下的可退余额, 返回清零前金额
func consumeLock(tx *gorm.DB, userAddr string, payToken string, now int64) (decimal.Decimal, error) {
	var lock model.LockedBalance
	db := lockForUpdate(tx).Table(model.LockedBalanceTableName()).
		Where("user_address = ? and pay_token = ?", userAddr, payToken).
		Find(&lock)
	if db.Error != nil {
		return decimal.Zero, errors.Wrap(db.Error, "failed on load locked balance")
	}
	if lock.Id == 0 || lock.Amount.IsZero() {
		return decimal.Zero, nil
	}
	amount := lock.Amount
	if err := tx.Table(model.LockedBalanceTableName()).
		Where("id = ?", lock.Id).
		Updates(map[string]interface{}{
			"amount":      decimal.Zero,
			"update_time": now,
		}).Error; err != nil {
		return decimal.Zero, errors.Wrap(err, "failed on consume locked balance")
	}
	return amount, nil
}

// checkNotBlocked 黑名单校验
func checkNotBlocked(ctx context.Context, svcCtx *svc.ServerCtx, userAddr string) error {
	blocked, err := svcCtx.Dao.IsUserBlocked(ctx, userAddr)
	if err != nil {
		return err
	}
	if blocked {
		return errors.Wrapf(errcode.ErrUserNotApproved, "user %s", userAddr)
	}
	return nil
}
