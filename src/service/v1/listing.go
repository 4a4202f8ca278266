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

// ListNftParams 挂单参数
type ListNftParams struct {
	Caller     string
	NftAddress string
	TokenId    string
	PayToken   string // 零地址表示原生币
	Price      decimal.Decimal
	Quantity   int64
	Duration   int64 // 有效期(秒), 0 表示不过期
	NftKind    int8
	SellKind   int8
}

// ListNft 创建挂单
// 1. 参数与黑名单校验
// 2. 链上所有权与市场授权校验
// 3. 落库挂单与事件记录
func ListNft(ctx context.Context, svcCtx *svc.ServerCtx, params ListNftParams) (*model.Listing, error) {
	if !params.Price.IsPositive() {
		return nil, errors.Wrap(errcode.ErrInvalidParams, "price must be positive")
	}
	if params.Duration < 0 {
		return nil, errors.Wrap(errcode.ErrInvalidParams, "duration must not be negative")
	}
	if params.SellKind != model.SellKindFixedPrice && params.SellKind != model.SellKindAuction {
		return nil, errors.Wrapf(errcode.ErrInvalidParams, "unknown sell kind %d", params.SellKind)
	}

	caller := utils.NormalizeAddress(params.Caller)
	nftAddr := utils.NormalizeAddress(params.NftAddress)
	payToken := utils.NormalizeAddress(params.PayToken)
	if utils.IsNativeToken(payToken) {
		payToken = utils.ZeroAddress
	}

	if err := checkNotBlocked(ctx, svcCtx, caller); err != nil {
		return nil, err
	}

	// 链上校验: 持有且已授权市场运营账户
	switch params.NftKind {
	case model.NftKindErc721:
		if params.Quantity != 1 {
			return nil, errors.Wrap(errcode.ErrInvalidParams, "erc721 quantity must be 1")
		}
		owner, err := svcCtx.Evm.OwnerOf(ctx, nftAddr, params.TokenId)
		if err != nil {
			return nil, errors.Wrap(err, "failed on query nft owner")
		}
		if utils.NormalizeAddress(owner) != caller {
			return nil, errors.Wrapf(errcode.ErrInvalidOwner, "nft %s token %s", nftAddr, params.TokenId)
		}
	case model.NftKindErc1155:
		if params.Quantity < 1 {
			return nil, errors.Wrap(errcode.ErrInvalidParams, "quantity must be positive")
		}
		balance, err := svcCtx.Evm.BalanceOf1155(ctx, nftAddr, caller, params.TokenId)
		if err != nil {
			return nil, errors.Wrap(err, "failed on query nft balance")
		}
		if balance < params.Quantity {
			return nil, errors.Wrapf(errcode.ErrInvalidOwner, "nft %s token %s balance %d below %d",
				nftAddr, params.TokenId, balance, params.Quantity)
		}
	default:
		return nil, errors.Wrapf(errcode.ErrInvalidParams, "unknown nft kind %d", params.NftKind)
	}

	approved, err := svcCtx.Evm.IsApprovedForAll(ctx, nftAddr, caller, svcCtx.Evm.Operator())
	if err != nil {
		return nil, errors.Wrap(err, "failed on query nft approval")
	}
	if !approved {
		return nil, errors.Wrapf(errcode.ErrMarketplaceNotApproved, "nft %s owner %s", nftAddr, caller)
	}

	now := svcCtx.Now().Unix()
	var deadline int64
	if params.Duration > 0 {
		deadline = now + params.Duration
	}

	listing := &model.Listing{
		Seller:     caller,
		NftAddress: nftAddr,
		PayToken:   payToken,
		TokenId:    params.TokenId,
		Quantity:   params.Quantity,
		Price:      params.Price,
		Deadline:   deadline,
		NftKind:    params.NftKind,
		SellKind:   params.SellKind,
		Active:     true,
		HighestBid: decimal.Zero,
		CreateTime: now,
		UpdateTime: now,
	}

	if err := svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(model.ListingTableName()).Create(listing).Error; err != nil {
			return errors.Wrap(err, "failed on create listing")
		}
		return insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityListNft,
			Maker:        caller,
			NftAddress:   nftAddr,
			TokenId:      params.TokenId,
			PayToken:     payToken,
			Price:        params.Price,
			Quantity:     params.Quantity,
			ListingId:    listing.Id,
			EventTime:    now,
		})
	}); err != nil {
		return nil, err
	}

	return listing, nil
}

// ListNft721 挂单单个 ERC721
func ListNft721(ctx context.Context, svcCtx *svc.ServerCtx, params ListNftParams) (*model.Listing, error) {
	params.NftKind = model.NftKindErc721
	params.Quantity = 1
	return ListNft(ctx, svcCtx, params)
}

// ListNft1155 挂单指定数量的 ERC1155
func ListNft1155(ctx context.Context, svcCtx *svc.ServerCtx, params ListNftParams) (*model.Listing, error) {
	params.NftKind = model.NftKindErc1155
	return ListNft(ctx, svcCtx, params)
}

// CancelListing 卖家撤销在售挂单
// 撤销不触碰竞拍者的可退余额, 出局押金仍走提款通道退回
func CancelListing(ctx context.Context, svcCtx *svc.ServerCtx, caller string, listingId int64) error {
	callerAddr := utils.NormalizeAddress(caller)
	now := svcCtx.Now().Unix()

	return svcCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := loadListingForUpdate(tx, listingId)
		if err != nil {
			return err
		}
		if listing.Seller != callerAddr {
			return errors.Wrapf(errcode.ErrInvalidOwner, "listing %d seller %s", listingId, listing.Seller)
		}

		// 有人出价的拍卖同样允许撤销, 当前最高价押金转入可退余额
		if listing.SellKind == model.SellKindAuction && listing.HighestBidder != "" {
			if err := creditLock(tx, listing.HighestBidder, listing.PayToken, listing.HighestBid, now); err != nil {
				return err
			}
		}

		if err := tx.Table(model.ListingTableName()).
			Where("id = ?", listing.Id).
			Updates(map[string]interface{}{
				"active":      false,
				"update_time": now,
			}).Error; err != nil {
			return errors.Wrap(err, "failed on deactivate listing")
		}

		return insertActivity(tx, &model.Activity{
			ActivityType: model.ActivityCancelListNft,
			Maker:        callerAddr,
			NftAddress:   listing.NftAddress,
			TokenId:      listing.TokenId,
			PayToken:     listing.PayToken,
			Price:        listing.Price,
			Quantity:     listing.Quantity,
			ListingId:    listing.Id,
			EventTime:    now,
		})
	})
}
