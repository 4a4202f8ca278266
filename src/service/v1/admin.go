package service

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/src/common/utils"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

// requireOwner 事务内取配置并校验管理员身份
func requireOwner(tx *gorm.DB, caller string) (*model.MarketConfig, error) {
	cfg, err := loadConfigForUpdate(tx)
	if err != nil {
		return nil, err
	}
	if cfg.Owner != utils.NormalizeAddress(caller) {
		return nil, errors.Wrapf(errcode.ErrUnauthorized, "caller %s", caller)
	}
	return cfg, nil
}

// BlockUser 管理员拉黑用户, 重复拉黑为幂等操作
// 拉黑只拦截新的挂单与出价, 已有挂单/押金不受影响
func BlockUser(ctx context.Context, svcCtx *svc.ServerCtx, caller string, userAddr string) error {
	user := utils.NormalizeAddress(userAddr)
	now := svcCtx.Now().Unix()

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireOwner(tx, caller); err != nil {
			return err
		}

		res := tx.Table(model.UserBlockTableName()).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.UserBlock{
				UserAddress: user,
				BlockTime:   now,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed on block user")
		}
		if res.RowsAffected == 0 {
			// 已在黑名单, 不重复记事件
			return nil
		}

		return insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityBlockUser,
			Maker:        utils.NormalizeAddress(caller),
			Taker:        user,
			NewValue:     strconv.FormatInt(now, 10),
			EventTime:    now,
		})
	})
}

// UnblockUser 管理员解封用户, 解封未拉黑的用户同样幂等
func UnblockUser(ctx context.Context, svcCtx *svc.ServerCtx, caller string, userAddr string) error {
	user := utils.NormalizeAddress(userAddr)
	now := svcCtx.Now().Unix()

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireOwner(tx, caller); err != nil {
			return err
		}

		res := tx.Table(model.UserBlockTableName()).
			Where("user_address = ?", user).
			Delete(&model.UserBlock{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed on unblock user")
		}
		if res.RowsAffected == 0 {
			return nil
		}

		return insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityUnblockUser,
			Maker:        utils.NormalizeAddress(caller),
			Taker:        user,
			NewValue:     strconv.FormatInt(now, 10),
			EventTime:    now,
		})
	})
}

// IsBlocked 查询用户黑名单状态 (公开接口)
func IsBlocked(ctx context.Context, svcCtx *svc.ServerCtx, userAddr string) (bool, error) {
	return svcCtx.Dao.IsUserBlocked(ctx, utils.NormalizeAddress(userAddr))
}

// TransferOwnership 移交管理权
func TransferOwnership(ctx context.Context, svcCtx *svc.ServerCtx, caller string, newOwner string) error {
	if !utils.IsHexAddress(newOwner) || utils.IsNativeToken(newOwner) {
		return errors.Wrapf(errcode.ErrInvalidParams, "invalid new owner %s", newOwner)
	}
	now := svcCtx.Now().Unix()

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := requireOwner(tx, caller)
		if err != nil {
			return err
		}

		if err := tx.Table(model.MarketConfigTableName()).
			Where("id = ?", cfg.Id).
			Updates(map[string]interface{}{
				"owner":       utils.NormalizeAddress(newOwner),
				"update_time": now,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on transfer ownership")
		}

		return insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityOwnershipTransferred,
			Maker:        cfg.Owner,
			Taker:        utils.NormalizeAddress(newOwner),
			OldValue:     cfg.Owner,
			NewValue:     utils.NormalizeAddress(newOwner),
			EventTime:    now,
		})
	})
}

// SetTreasury 变更金库地址, 零地址拒绝
func SetTreasury(ctx context.Context, svcCtx *svc.ServerCtx, caller string, treasury string) error {
	if !utils.IsHexAddress(treasury) || utils.IsNativeToken(treasury) {
		return errors.Wrapf(errcode.ErrInvalidParams, "invalid treasury %s", treasury)
	}
	now := svcCtx.Now().Unix()

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := requireOwner(tx, caller)
		if err != nil {
			return err
		}

		if err := tx.Table(model.MarketConfigTableName()).
			Where("id = ?", cfg.Id).
			Updates(map[string]interface{}{
				"treasury":    utils.NormalizeAddress(treasury),
				"update_time": now,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on set treasury")
		}

		return insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityTreasurySet,
			Maker:        cfg.Owner,
			OldValue:     cfg.Treasury,
			NewValue:     utils.NormalizeAddress(treasury),
			EventTime:    now,
		})
	})
}

// SetTreasurySellerFee 变更卖家侧费率, 上限 5000 bps (含)
func SetTreasurySellerFee(ctx context.Context, svcCtx *svc.ServerCtx, caller string, feeBps int64) error {
	return setTreasuryFee(ctx, svcCtx, caller, feeBps, true)
}

// SetTreasuryBuyerFee 变更买家侧费率, 上限 5000 bps (含)
func SetTreasuryBuyerFee(ctx context.Context, svcCtx *svc.ServerCtx, caller string, feeBps int64) error {
	return setTreasuryFee(ctx, svcCtx, caller, feeBps, false)
}

func setTreasuryFee(ctx context.Context, svcCtx *svc.ServerCtx, caller string, feeBps int64, sellerSide bool) error {
	if feeBps < 0 || feeBps > model.FeeBpsCap {
		return errors.Wrapf(errcode.ErrInvalidParams, "fee %d over cap %d", feeBps, model.FeeBpsCap)
	}
	now := svcCtx.Now().Unix()

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := requireOwner(tx, caller)
		if err != nil {
			return err
		}

		column := "buyer_fee_bps"
		activityType := int8(model.ActivityTreasuryBuyerFee)
		oldFee := cfg.BuyerFeeBps
		if sellerSide {
			column = "seller_fee_bps"
			activityType = int8(model.ActivityTreasurySellerFee)
			oldFee = cfg.SellerFeeBps
		}

		if err := tx.Table(model.MarketConfigTableName()).
			Where("id = ?", cfg.Id).
			Updates(map[string]interface{}{
				column:        feeBps,
				"update_time": now,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on set treasury fee")
		}

		return insertActivity(tx, &model.Activity{
			ActivityType: activityType,
			Maker:        cfg.Owner,
			OldValue:     strconv.FormatInt(oldFee, 10),
			NewValue:     strconv.FormatInt(feeBps, 10),
			EventTime:    now,
		})
	})
}

// TreasuryData 读取当前市场配置 (公开接口)
func TreasuryData(ctx context.Context, svcCtx *svc.ServerCtx) (*model.MarketConfig, error) {
	cfg, err := svcCtx.Dao.GetMarketConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.Wrap(errcode.ErrUnexpected, "market config not bootstrapped")
	}
	return cfg, nil
}
