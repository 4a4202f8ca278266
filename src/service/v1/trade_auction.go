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

// BuyAuctionNftWithNativeToken 原生币竞拍出价
// amount 为随调用附带的原生币数量, 实际出价 = amount + 调用者在该资产下的可退余额
func BuyAuctionNftWithNativeToken(ctx context.Context, svcCtx *svc.ServerCtx, caller string, listingId int64, amount decimal.Decimal) error {
	return placeBid(ctx, svcCtx, caller, listingId, true, amount)
}

// BuyAuctionNftWithErc20Token ERC20 竞拍出价
// 从出价人账户划转 amount 入金库, 实际出价 = amount + 可退余额
func BuyAuctionNftWithErc20Token(ctx context.Context, svcCtx *svc.ServerCtx, caller string, listingId int64, amount decimal.Decimal) error {
	return placeBid(ctx, svcCtx, caller, listingId, false, amount)
}

// placeBid 拍卖出价
// 1. 校验挂单状态/截止时间/出价人身份
// 2. 合并可退余额后与当前价比较, 必须严格更高
// 3. 前一名最高价转入其可退余额, 更新榜首
// 出价被拒时事务回滚, 合并进来的可退余额原样保留
func placeBid(ctx context.Context, svcCtx *svc.ServerCtx, caller string, listingId int64, isNative bool, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.Wrap(errcode.ErrInvalidParams, "amount must not be negative")
	}

	bidder := utils.NormalizeAddress(caller)
	now := svcCtx.Now().Unix()

	if err := checkNotBlocked(ctx, svcCtx, bidder); err != nil {
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
		if listing.SellKind != model.SellKindAuction {
			return errors.Wrapf(errcode.ErrInvalidSellKind, "listing %d is a fixed price sale", listingId)
		}
		if listing.Seller == bidder {
			return errors.Wrapf(errcode.ErrBuySelfNft, "listing %d", listingId)
		}

		nativeListing := utils.IsNativeToken(listing.PayToken)
		if nativeListing != isNative {
			return errors.Wrapf(errcode.ErrInvalidParams, "listing %d pay token is %s", listingId, listing.PayToken)
		}

		// 合并该资产下的可退余额, 押金直接升级为新出价的一部分
		locked, err := consumeLock(tx, bidder, listing.PayToken, now)
		if err != nil {
			return err
		}
		bid := amount.Add(locked)

		// 当前价: 无人出价时为起拍价, 新价必须严格更高
		current := listing.Price
		if listing.HighestBidder != "" {
			current = listing.HighestBid
		}
		if !bid.GreaterThan(current) {
			return errors.Wrapf(errcode.ErrBidLowerPrice, "nft %s token %s current %s bid %s",
				listing.NftAddress, listing.TokenId, current, bid)
		}

		// 前一名出局, 押金转入可退余额
		prevBidder := listing.HighestBidder
		if prevBidder != "" {
			if err := creditLock(tx, prevBidder, listing.PayToken, listing.HighestBid, now); err != nil {
				return err
			}
		}

		if err := tx.Table(model.ListingTableName()).
			Where("id = ?", listing.Id).
			Updates(map[string]interface{}{
				"highest_bidder": bidder,
				"highest_bid":    bid,
				"update_time":    now,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on update highest bid")
		}

		if err := insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityPlaceBidNft,
			Maker:        bidder,
			Taker:        prevBidder,
			NftAddress:   listing.NftAddress,
			TokenId:      listing.TokenId,
			PayToken:     listing.PayToken,
			Price:        bid,
			Quantity:     listing.Quantity,
			ListingId:    listing.Id,
			OldValue:     listing.Price.String(), // 起拍价
			EventTime:    now,
		}); err != nil {
			return err
		}

		// 新增部分入金库; 原生币已随调用入账, ERC20 需要划转
		if !isNative && amount.IsPositive() {
			if err := svcCtx.Evm.TransferErc20From(ctx, listing.PayToken, bidder, svcCtx.Evm.Operator(), amount); err != nil {
				return errors.Wrap(err, "failed on pull bid amount")
			}
		}
		return nil
	})
}

// ReleaseNft 卖家结拍
// 截止时间前后均可结拍 (提前结拍即提前接受当前最高价), 无人出价不可结拍
// 成交价为最高出价, 仅收取卖家侧手续费
func ReleaseNft(ctx context.Context, svcCtx *svc.ServerCtx, caller string, listingId int64) error {
	seller := utils.NormalizeAddress(caller)
	now := svcCtx.Now().Unix()

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := loadListingForUpdate(tx, listingId)
		if err != nil {
			return err
		}
		if listing.Seller != seller {
			return errors.Wrapf(errcode.ErrInvalidOwner, "listing %d seller %s", listingId, listing.Seller)
		}
		if listing.SellKind != model.SellKindAuction {
			return errors.Wrapf(errcode.ErrInvalidSellKind, "listing %d is a fixed price sale", listingId)
		}
		if listing.HighestBidder == "" {
			return errors.Wrapf(errcode.ErrInsufficientFunds, "listing %d has no bid", listingId)
		}

		cfg, err := loadConfigForUpdate(tx)
		if err != nil {
			return err
		}
		settlePrice := listing.HighestBid
		sellerFee := feeOf(settlePrice, cfg.SellerFeeBps)

		if err := tx.Table(model.ListingTableName()).
			Where("id = ?", listing.Id).
			Updates(map[string]interface{}{
				"active":      false,
				"update_time": now,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on deactivate listing")
		}

		if err := insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityBuyNft,
			Maker:        listing.HighestBidder,
			Taker:        listing.Seller,
			NftAddress:   listing.NftAddress,
			TokenId:      listing.TokenId,
			PayToken:     listing.PayToken,
			Price:        settlePrice,
			Quantity:     listing.Quantity,
			ListingId:    listing.Id,
			EventTime:    now,
		}); err != nil {
			return err
		}

		if err := transferNft(ctx, svcCtx, listing, listing.Seller, listing.HighestBidder); err != nil {
			return err
		}

		// 押金全额在金库, 由金库出金
		sellerProceeds := settlePrice.Sub(sellerFee)
		if utils.IsNativeToken(listing.PayToken) {
			if err := svcCtx.Evm.TransferNative(ctx, listing.Seller, sellerProceeds); err != nil {
				return errors.Wrap(err, "failed on pay seller")
			}
			if sellerFee.IsPositive() {
				if err := svcCtx.Evm.TransferNative(ctx, cfg.Treasury, sellerFee); err != nil {
					return errors.Wrap(err, "failed on pay treasury")
				}
			}
			return nil
		}
		if err := svcCtx.Evm.TransferErc20(ctx, listing.PayToken, listing.Seller, sellerProceeds); err != nil {
			return errors.Wrap(err, "failed on pay seller")
		}
		if sellerFee.IsPositive() {
			if err := svcCtx.Evm.TransferErc20(ctx, listing.PayToken, cfg.Treasury, sellerFee); err != nil {
				return errors.Wrap(err, "failed on pay treasury")
			}
		}
		return nil
	})
}
