package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

func TestBuyFixedPriceNftWithNativeToken(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, nativeAddr, eth("1"), 0, model.SellKindFixedPrice)
	auction := list1155(t, svcCtx, gw, 1, nativeAddr, eth("1"), 0, model.SellKindAuction)

	// 买家原生币已随调用进入金库
	gw.SetFungibleBalance(nativeAddr, operatorAddr, eth("1.0015"))

	// 卖家自购
	err := BuyFixedPriceNftWithNativeToken(ctx, svcCtx, sellerAddr, listing.Id, eth("1.0015"))
	require.True(t, errcode.Is(err, errcode.ErrBuySelfNft))

	// 对拍卖挂单走一口价通道
	err = BuyFixedPriceNftWithNativeToken(ctx, svcCtx, buyerAddr, auction.Id, eth("1.0015"))
	require.True(t, errcode.Is(err, errcode.ErrInvalidSellKind))

	// 交易方式先于买家身份校验: 卖家误用通道时同样报 InvalidSellKind
	err = BuyFixedPriceNftWithNativeToken(ctx, svcCtx, sellerAddr, auction.Id, eth("1.0015"))
	require.True(t, errcode.Is(err, errcode.ErrInvalidSellKind))

	// 差一分都不行: 需要 价格+买家侧手续费
	err = BuyFixedPriceNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1"))
	require.True(t, errcode.Is(err, errcode.ErrInsufficientFunds))

	require.NoError(t, BuyFixedPriceNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.0015")))

	// 15 bps 双边: 卖家得 0.9985, 金库得 0.003
	require.True(t, gw.FungibleBalance(nativeAddr, sellerAddr).Equal(eth("0.9985")))
	require.True(t, gw.FungibleBalance(nativeAddr, treasuryAddr).Equal(eth("0.003")))

	owner, err := gw.OwnerOf(ctx, nft721Addr, "0")
	require.NoError(t, err)
	require.Equal(t, buyerAddr, owner)

	require.False(t, reloadListing(t, svcCtx, listing.Id).Active)

	// 终态挂单不可再买
	err = BuyFixedPriceNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.0015"))
	require.True(t, errcode.Is(err, errcode.ErrNftNotListed))

	// 成交事件价格不含手续费
	activities, _, err := svcCtx.Dao.QueryActivities(ctx, buyerAddr, listing.Id, []int8{model.ActivityBuyNft}, 1, 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.True(t, activities[0].Price.Equal(eth("1")))
	require.Equal(t, sellerAddr, activities[0].Taker)
}

func TestBuyFixedPriceNftWithErc20Token(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list1155(t, svcCtx, gw, 2, erc20Addr, eth("1"), 0, model.SellKindFixedPrice)

	gw.SetFungibleBalance(erc20Addr, buyerAddr, eth("2"))

	// 原生币通道买 ERC20 挂单
	err := BuyFixedPriceNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.0015"))
	require.True(t, errcode.Is(err, errcode.ErrInvalidParams))

	require.NoError(t, BuyFixedPriceNftWithErc20Token(ctx, svcCtx, buyerAddr, listing.Id, eth("1.0015")))

	// 只划转所需总额
	require.True(t, gw.FungibleBalance(erc20Addr, buyerAddr).Equal(eth("0.9985")))
	require.True(t, gw.FungibleBalance(erc20Addr, sellerAddr).Equal(eth("0.9985")))
	require.True(t, gw.FungibleBalance(erc20Addr, treasuryAddr).Equal(eth("0.003")))

	balance, err := gw.BalanceOf1155(ctx, nft1155Addr, buyerAddr, "0")
	require.NoError(t, err)
	require.EqualValues(t, 2, balance)
}

func TestBuyFixedPriceRollbackOnTransferFailure(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, erc20Addr, eth("1"), 0, model.SellKindFixedPrice)
	gw.SetFungibleBalance(erc20Addr, buyerAddr, eth("2"))

	gw.FailNextTransfer = true
	err := BuyFixedPriceNftWithErc20Token(ctx, svcCtx, buyerAddr, listing.Id, eth("1.0015"))
	require.Error(t, err)

	// 链上转移失败, 状态整体回滚
	require.True(t, reloadListing(t, svcCtx, listing.Id).Active)
	_, total, err := svcCtx.Dao.QueryActivities(ctx, "", listing.Id, []int8{model.ActivityBuyNft}, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)

	// 重试成交
	require.NoError(t, BuyFixedPriceNftWithErc20Token(ctx, svcCtx, buyerAddr, listing.Id, eth("1.0015")))
	require.False(t, reloadListing(t, svcCtx, listing.Id).Active)
}

func TestBuyFixedPriceExpiredListing(t *testing.T) {
	svcCtx, gw, clock := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, nativeAddr, eth("1"), 3600, model.SellKindFixedPrice)
	gw.SetFungibleBalance(nativeAddr, operatorAddr, eth("2"))

	clock.Advance(2 * time.Hour)

	err := BuyFixedPriceNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.0015"))
	require.True(t, errcode.Is(err, errcode.ErrNftNotListed))
}
