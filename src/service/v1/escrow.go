package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/src/common/utils"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

// WithdrawLockAmount 提取出局押金
// 按支付资产全额提取, 余额为零时拒绝
func WithdrawLockAmount(ctx context.Context, svcCtx *svc.ServerCtx, caller string, payToken string) (decimal.Decimal, error) {
	user := utils.NormalizeAddress(caller)
	token := utils.NormalizeAddress(payToken)
	if utils.IsNativeToken(token) {
		token = utils.ZeroAddress
	}
	now := svcCtx.Now().Unix()

	var amount decimal.Decimal
	err := svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		amount, err = consumeLock(tx, user, token, now)
		if err != nil {
			return err
		}
		if !amount.IsPositive() {
			return errors.Wrapf(errcode.ErrInsufficientFunds, "user %s has no locked balance", user)
		}

		if err := insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityWithdrawLockAmount,
			Maker:        user,
			PayToken:     token,
			Price:        amount,
			EventTime:    now,
		}); err != nil {
			return err
		}

		// 金库出金, 失败回滚余额
		if utils.IsNativeToken(token) {
			if err := svcCtx.Evm.TransferNative(ctx, user, amount); err != nil {
				return errors.Wrap(err, "failed on withdraw native")
			}
			return nil
		}
		if err := svcCtx.Evm.TransferErc20(ctx, token, user, amount); err != nil {
			return errors.Wrap(err, "failed on withdraw erc20")
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// GetUserLocks 查询用户各支付资产下的可退余额
func GetUserLocks(ctx context.Context, svcCtx *svc.ServerCtx, userAddr string) ([]model.LockedBalance, error) {
	return svcCtx.Dao.QueryUserLocks(ctx, utils.NormalizeAddress(userAddr))
}
