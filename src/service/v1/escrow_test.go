package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
)

func TestWithdrawLockAmount(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, nativeAddr, eth("1"), 0, model.SellKindAuction)

	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, listing.Id, eth("1.1")))
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder2Addr, listing.Id, eth("1.2")))

	gw.SetFungibleBalance(nativeAddr, operatorAddr, eth("2.3"))

	// 无余额提取被拒
	_, err := WithdrawLockAmount(ctx, svcCtx, sellerAddr, nativeAddr)
	require.True(t, errcode.Is(err, errcode.ErrInsufficientFunds))

	amount, err := WithdrawLockAmount(ctx, svcCtx, buyerAddr, nativeAddr)
	require.NoError(t, err)
	require.True(t, amount.Equal(eth("1.1")))
	require.True(t, gw.FungibleBalance(nativeAddr, buyerAddr).Equal(eth("1.1")))
	require.True(t, lockOf(t, svcCtx, buyerAddr, nativeAddr).IsZero())

	// 全额提取后再次提取被拒
	_, err = WithdrawLockAmount(ctx, svcCtx, buyerAddr, nativeAddr)
	require.True(t, errcode.Is(err, errcode.ErrInsufficientFunds))

	// 提取事件落库
	activities, _, err := svcCtx.Dao.QueryActivities(ctx, buyerAddr, 0, []int8{model.ActivityWithdrawLockAmount}, 1, 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.True(t, activities[0].Price.Equal(eth("1.1")))
}

func TestWithdrawRollbackOnTransferFailure(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	listing := list721(t, svcCtx, gw, erc20Addr, eth("1"), 0, model.SellKindAuction)
	gw.SetFungibleBalance(erc20Addr, buyerAddr, eth("10"))
	gw.SetFungibleBalance(erc20Addr, bidder2Addr, eth("10"))

	require.NoError(t, BuyAuctionNftWithErc20Token(ctx, svcCtx, buyerAddr, listing.Id, eth("1.1")))
	require.NoError(t, BuyAuctionNftWithErc20Token(ctx, svcCtx, bidder2Addr, listing.Id, eth("1.2")))

	gw.FailNextTransfer = true
	_, err := WithdrawLockAmount(ctx, svcCtx, buyerAddr, erc20Addr)
	require.Error(t, err)

	// 出金失败时余额回滚, 可重试
	require.True(t, lockOf(t, svcCtx, buyerAddr, erc20Addr).Equal(eth("1.1")))

	amount, err := WithdrawLockAmount(ctx, svcCtx, buyerAddr, erc20Addr)
	require.NoError(t, err)
	require.True(t, amount.Equal(eth("1.1")))
}

func TestLocksPerPayToken(t *testing.T) {
	svcCtx, gw, _ := newTestCtx(t)
	ctx := context.Background()

	native := list721(t, svcCtx, gw, nativeAddr, eth("1"), 0, model.SellKindAuction)
	erc := list1155(t, svcCtx, gw, 1, erc20Addr, eth("1"), 0, model.SellKindAuction)

	gw.SetFungibleBalance(erc20Addr, buyerAddr, eth("10"))
	gw.SetFungibleBalance(erc20Addr, bidder2Addr, eth("10"))

	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, native.Id, eth("1.1")))
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, bidder2Addr, native.Id, eth("1.2")))
	require.NoError(t, BuyAuctionNftWithErc20Token(ctx, svcCtx, buyerAddr, erc.Id, eth("2.1")))
	require.NoError(t, BuyAuctionNftWithErc20Token(ctx, svcCtx, bidder2Addr, erc.Id, eth("2.2")))

	// 不同支付资产独立记账
	locks, err := GetUserLocks(ctx, svcCtx, buyerAddr)
	require.NoError(t, err)
	require.Len(t, locks, 2)
	require.True(t, lockOf(t, svcCtx, buyerAddr, nativeAddr).Equal(eth("1.1")))
	require.True(t, lockOf(t, svcCtx, buyerAddr, erc20Addr).Equal(eth("2.1")))

	// 原生币出价不消耗 ERC20 可退余额
	require.NoError(t, BuyAuctionNftWithNativeToken(ctx, svcCtx, buyerAddr, native.Id, eth("0.2")))
	require.True(t, lockOf(t, svcCtx, buyerAddr, erc20Addr).Equal(eth("2.1")))
}
