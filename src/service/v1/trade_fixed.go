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

// BuyFixedPriceNftWithNativeToken 原生币购买一口价挂单
// amount 为买家随调用附带的原生币数量, 需覆盖 价格+买家侧手续费, 超付不退
func BuyFixedPriceNftWithNativeToken(ctx context.Context, svcCtx *svc.ServerCtx, caller string, listingId int64, amount decimal.Decimal) error {
	return buyFixedPriceNft(ctx, svcCtx, caller, listingId, true, amount)
}

// BuyFixedPriceNftWithErc20Token ERC20 购买一口价挂单
// amount 为买家授意支付的数量, 需覆盖 价格+买家侧手续费
// 实际只从买家账户精确划转所需总额, 需事先 approve 给运营账户
func BuyFixedPriceNftWithErc20Token(ctx context.Context, svcCtx *svc.ServerCtx, caller string, listingId int64, amount decimal.Decimal) error {
	return buyFixedPriceNft(ctx, svcCtx, caller, listingId, false, amount)
}

// buyFixedPriceNft 一口价成交
// 1. 校验挂单状态/交易方式/买家身份/支付能力
// 2. 事务内置挂单终态并落事件
// 3. 资产划转: NFT 给买家, 净价给卖家, 两侧手续费给金库
// 任一划转失败整个事务回滚, 挂单保持在售
func buyFixedPriceNft(ctx context.Context, svcCtx *svc.ServerCtx, caller string, listingId int64, isNative bool, amount decimal.Decimal) error {
	buyer := utils.NormalizeAddress(caller)
	now := svcCtx.Now().Unix()

	if err := checkNotBlocked(ctx, svcCtx, buyer); err != nil {
		return err
	}

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := loadListingForUpdate(tx, listingId)
		if err != nil {
			return err
		}
		if listing.Deadline > 0 && now > listing.Deadline {
			return errors.Wrapf(errcode.ErrNftNotListed, "listing %d expired at %d", listingId, listing.Deadline)
		}
		if listing.SellKind != model.SellKindFixedPrice {
			return errors.Wrapf(errcode.ErrInvalidSellKind, "listing %d is an auction", listingId)
		}
		if listing.Seller == buyer {
			return errors.Wrapf(errcode.ErrBuySelfNft, "listing %d", listingId)
		}

		nativeListing := utils.IsNativeToken(listing.PayToken)
		if nativeListing != isNative {
			return errors.Wrapf(errcode.ErrInvalidParams, "listing %d pay token is %s", listingId, listing.PayToken)
		}

		cfg, err := loadConfigForUpdate(tx)
		if err != nil {
			return err
		}
		sellerFee := feeOf(listing.Price, cfg.SellerFeeBps)
		buyerFee := feeOf(listing.Price, cfg.BuyerFeeBps)
		required := listing.Price.Add(buyerFee)

		if amount.LessThan(required) {
			return errors.Wrapf(errcode.ErrInsufficientFunds, "need %s got %s", required, amount)
		}

		if err := tx.Table(model.ListingTableName()).
			Where("id = ?", listing.Id).
			Updates(map[string]interface{}{
				"active":      false,
				"update_time": now,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on deactivate listing")
		}

		// 事件中的价格不含任何手续费
		if err := insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityBuyNft,
			Maker:        buyer,
			Taker:        listing.Seller,
			NftAddress:   listing.NftAddress,
			TokenId:      listing.TokenId,
			PayToken:     listing.PayToken,
			Price:        listing.Price,
			Quantity:     listing.Quantity,
			ListingId:    listing.Id,
			EventTime:    now,
		}); err != nil {
			return err
		}

		// 划转放在状态落库之后, 失败则整体回滚
		if err := transferNft(ctx, svcCtx, listing, listing.Seller, buyer); err != nil {
			return err
		}

		sellerProceeds := listing.Price.Sub(sellerFee)
		treasuryProceeds := sellerFee.Add(buyerFee)
		if isNative {
			// 买家原生币已随调用进入金库, 由金库出金
			if err := svcCtx.Evm.TransferNative(ctx, listing.Seller, sellerProceeds); err != nil {
				return errors.Wrap(err, "failed on pay seller")
			}
			if treasuryProceeds.IsPositive() {
				if err := svcCtx.Evm.TransferNative(ctx, cfg.Treasury, treasuryProceeds); err != nil {
					return errors.Wrap(err, "failed on pay treasury")
				}
			}
			return nil
		}
		if err := svcCtx.Evm.TransferErc20From(ctx, listing.PayToken, buyer, listing.Seller, sellerProceeds); err != nil {
			return errors.Wrap(err, "failed on pay seller")
		}
		if treasuryProceeds.IsPositive() {
			if err := svcCtx.Evm.TransferErc20From(ctx, listing.PayToken, buyer, cfg.Treasury, treasuryProceeds); err != nil {
				return errors.Wrap(err, "failed on pay treasury")
			}
		}
		return nil
	})
}

// transferNft 按挂单类型移交 NFT
func transferNft(ctx context.Context, svcCtx *svc.ServerCtx, listing *model.Listing, from string, to string) error {
	switch listing.NftKind {
	case model.NftKindErc721:
		if err := svcCtx.Evm.TransferNft721(ctx, listing.NftAddress, from, to, listing.TokenId); err != nil {
			return errors.Wrap(err, "failed on transfer nft")
		}
	case model.NftKindErc1155:
		if err := svcCtx.Evm.TransferNft1155(ctx, listing.NftAddress, from, to, listing.TokenId, listing.Quantity); err != nil {
			return errors.Wrap(err, "failed on transfer nft")
		}
	default:
		return errors.Wrapf(errcode.ErrUnexpected, "unknown nft kind %d", listing.NftKind)
	}
	return nil
}
