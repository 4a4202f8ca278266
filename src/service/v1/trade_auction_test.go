package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

func TestPlaceBidNativeToken(t *testing.T) {
	svcCtx, gw, clock := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, nativeAddr, eth("1"), 7*24*3600, model.SellKindAuction)
	fixed := list1155(t, svcCtx, gw, 1, nativeAddr, eth("1"), 0, model.SellKindFixedPrice)

	// 卖家自拍
	err := BuyAuctionNftWithNativeToken(ctx, svcCtx, sellerAddr, listing.Id, eth("1.1"))
	require.True(t, errcode.Is(err, errcode.ErrBuySelfNft))

	// 对一口价挂单走拍卖通道
	err = BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, fixed.Id, eth("1.1"))
	require.True(t, errcode.Is(err, errcode.ErrInvalidSellKind))

	// 交易方式先于出价人身份校验: 卖家误用通道时同样报 InvalidSellKind
	err = BuyAuctionNftWithNativeToken(ctx, svcCtx, sellerAddr, fixed.Id, eth("1.1"))
	require.True(t, errcode.Is(err, errcode.ErrInvalidSellKind))

	// 等于起拍价被拒, 必须严格更高
	err = BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1"))
	require.True(t, errcode.Is(err, errcode.ErrBidLowerPrice))

	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.1")))

	updated := reloadListing(t, svcCtx, listing.Id)
	require.Equal(t, buyerAddr, updated.HighestBidder)
	require.True(t, updated.HighestBid.Equal(eth("1.1")))
	require.True(t, updated.Active)

	// 截止后不可再出价
	clock.Advance(8 * 24 * time.Hour)
	err = BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder2Addr, listing.Id, eth("1.2"))
	require.True(t, errcode.Is(err, errcode.ErrNftNotListed))
}

func TestPlaceBidOutbidAndTopUp(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, nativeAddr, eth("1"), 7*24*3600, model.SellKindAuction)

	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.1")))
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder2Addr, listing.Id, eth("1.2")))
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder3Addr, listing.Id, eth("1.3")))

	// 出局押金进入可退余额
	require.True(t, lockOf(t, svcCtx, buyerAddr, nativeAddr).Equal(eth("1.1")))
	require.True(t, lockOf(t, svcCtx, bidder2Addr, nativeAddr).Equal(eth("1.2")))

	// 追加 0.2: 实际出价 = 0.2 + 在途可退余额 1.2 = 1.4
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder2Addr, listing.Id, eth("0.2")))

	updated := reloadListing(t, svcCtx, listing.Id)
	require.Equal(t, bidder2Addr, updated.HighestBidder)
	require.True(t, updated.HighestBid.Equal(eth("1.4")))

	// 追加后余额已并入出价, 前一名 1.3 转入可退余额
	require.True(t, lockOf(t, svcCtx, bidder2Addr, nativeAddr).IsZero())
	require.True(t, lockOf(t, svcCtx, bidder3Addr, nativeAddr).Equal(eth("1.3")))

	// 追加不足以超过当前价时回滚, 可退余额原样保留
	err := BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder3Addr, listing.Id, eth("0.05"))
	require.True(t, errcode.Is(err, errcode.ErrBidLowerPrice))
	require.True(t, lockOf(t, svcCtx, bidder3Addr, nativeAddr).Equal(eth("1.3")))
}

func TestPlaceBidErc20Token(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list1155(t, svcCtx, gw, 1, erc20Addr, eth("1"), 7*24*3600, model.SellKindAuction)

	gw.SetFungibleBalance(erc20Addr, buyerAddr, eth("10"))
	gw.SetFungibleBalance(erc20Addr, bidder2Addr, eth("10"))

	// 通道与支付资产不匹配
	err := BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.1"))
	require.True(t, errcode.Is(err, errcode.ErrInvalidParams))

	require.NoError(t, BuyAuctionNftWithErc20Token(ctx, svcCtx, buyerAddr, listing.Id, eth("1.1")))
	require.NoError(t, BuyAuctionNftWithErc20Token(ctx, svcCtx, bidder2Addr, listing.Id, eth("1.2")))

	// 押金划入金库
	require.True(t, gw.FungibleBalance(erc20Addr, buyerAddr).Equal(eth("8.9")))
	require.True(t, gw.FungibleBalance(erc20Addr, operatorAddr).Equal(eth("2.3")))

	// 追加出价只划转新增部分
	require.NoError(t, BuyAuctionNftWithErc20Token(ctx, svcCtx, buyerAddr, listing.Id, eth("0.2")))
	require.True(t, gw.FungibleBalance(erc20Addr, buyerAddr).Equal(eth("8.7")))

	updated := reloadListing(t, svcCtx, listing.Id)
	require.Equal(t, buyerAddr, updated.HighestBidder)
	require.True(t, updated.HighestBid.Equal(eth("1.3")))
}

func TestPlaceBidBlockedUser(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, nativeAddr, eth("1"), 0, model.SellKindAuction)

	err := BuyAuctionNftWithNativeToken(ctx, svcCtx, blockedAddr, listing.Id, eth("1.1"))
	require.True(t, errcode.Is(err, errcode.ErrUserNotApproved))
}

func TestReleaseNft(t *testing.T) {
	svcCtx, gw, clock := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, nativeAddr, eth("1"), 7*24*3600, model.SellKindAuction)

	// 无人出价不可结拍
	err := ReleaseNft(ctx, svcCtx, sellerAddr, listing.Id)
	require.True(t, errcode.Is(err, errcode.ErrInsufficientFunds))

	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.1")))
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder2Addr, listing.Id, eth("1.2")))
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder3Addr, listing.Id, eth("1.3")))
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder2Addr, listing.Id, eth("0.2")))

	// 押金在金库
	gw.SetFungibleBalance(nativeAddr, operatorAddr, eth("1.4"))

	// 非卖家不可结拍
	err = ReleaseNft(ctx, svcCtx, buyerAddr, listing.Id)
	require.True(t, errcode.Is(err, errcode.ErrInvalidOwner))

	// 截止时刻之前提前结拍
	clock.Advance(3 * 24 * time.Hour)
	require.NoError(t, ReleaseNft(ctx, svcCtx, sellerAddr, listing.Id))

	// 成交价 1.4, 仅收卖家侧 15 bps: 卖家 1.3979, 金库 0.0021
	require.True(t, gw.FungibleBalance(nativeAddr, sellerAddr).Equal(eth("1.3979")))
	require.True(t, gw.FungibleBalance(nativeAddr, treasuryAddr).Equal(eth("0.0021")))

	owner, err := gw.OwnerOf(ctx, nft721Addr, "0")
	require.NoError(t, err)
	require.Equal(t, bidder2Addr, owner)

	require.False(t, reloadListing(t, svcCtx, listing.Id).Active)

	// 终态后不可再出价/结拍
	err = BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("2"))
	require.True(t, errcode.Is(err, errcode.ErrNftNotListed))
	err = ReleaseNft(ctx, svcCtx, sellerAddr, listing.Id)
	require.True(t, errcode.Is(err, errcode.ErrNftNotListed))

	// 结拍事件以最高出价结算
	activities, _, err := svcCtx.Dao.QueryActivities(ctx, bidder2Addr, listing.Id, []int8{model.ActivityBuyNft}, 1, 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.True(t, activities[0].Price.Equal(eth("1.4")))
}

func TestReleaseNftErc20AfterDeadline(t *testing.T) {
	svcCtx, gw, clock := newTestCtx(t)
	ctx := context.Background()

	listing := list1155(t, svcCtx, gw, 1, erc20Addr, eth("1"), 7*24*3600, model.SellKindAuction)

	gw.SetFungibleBalance(erc20Addr, buyerAddr, eth("10"))
	require.NoError(t, BuyAuctionNftWithErc20Token(ctx, svcCtx, buyerAddr, listing.Id, eth("1.1")))

	// 截止之后仍可结拍
	clock.Advance(8 * 24 * time.Hour)
	require.NoError(t, ReleaseNft(ctx, svcCtx, sellerAddr, listing.Id))

	require.True(t, gw.FungibleBalance(erc20Addr, sellerAddr).Equal(eth("1.09835")))
	require.True(t, gw.FungibleBalance(erc20Addr, treasuryAddr).Equal(eth("0.00165")))

	balance, err := gw.BalanceOf1155(ctx, nft1155Addr, buyerAddr, "0")
	require.NoError(t, err)
	require.EqualValues(t, 1, balance)
}

func TestReleaseFixedPriceListingRejected(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, nativeAddr, eth("1"), 0, model.SellKindFixedPrice)

	err := ReleaseNft(ctx, svcCtx, sellerAddr, listing.Id)
	require.True(t, errcode.Is(err, errcode.ErrInvalidSellKind))
}
