package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ProjectsTask/EasySwapMarket/base/evm/erc/mock"
	"github.com/ProjectsTask/EasySwapMarket/src/config"
	"github.com/ProjectsTask/EasySwapMarket/src/dao"
	"github.com/ProjectsTask/EasySwapMarket/src/model"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

const (
	ownerAddr    = "0x00000000000000000000000000000000000000a1"
	treasuryAddr = "0x00000000000000000000000000000000000000a2"
	operatorAddr = "0x00000000000000000000000000000000000000a3"
	sellerAddr   = "0x00000000000000000000000000000000000000b1"
	buyerAddr    = "0x00000000000000000000000000000000000000b2"
	bidder2Addr  = "0x00000000000000000000000000000000000000b3"
	bidder3Addr  = "0x00000000000000000000000000000000000000b4"
	blockedAddr  = "0x00000000000000000000000000000000000000b5"

	nft721Addr  = "0x00000000000000000000000000000000000000c1"
	nft1155Addr = "0x00000000000000000000000000000000000000c2"
	erc20Addr   = "0x00000000000000000000000000000000000000d1"
	nativeAddr  = "0x0000000000000000000000000000000000000000"
)

// testClock 可拨动的测试时钟
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// newTestCtx 构造内存数据库 + 内存链网关的服务上下文
func newTestCtx(t *testing.T) (*svc.ServerCtx, *mock.Gateway, *testClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.MarketConfig{},
		&model.Listing{},
		&model.LockedBalance{},
		&model.UserBlock{},
		&model.Activity{},
	))

	gw := mock.NewGateway(operatorAddr)
	clock := &testClock{now: time.Unix(1700000000, 0)}

	svcCtx := svc.NewServerCtx(
		svc.WithDB(db),
		svc.WithDao(dao.New(context.Background(), db, nil)),
		svc.WithEvm(gw),
		svc.WithNow(clock.Now),
	)

	require.NoError(t, svc.BootstrapMarketConfig(context.Background(), svcCtx, config.MarketCfg{
		Owner:        ownerAddr,
		Treasury:     treasuryAddr,
		SellerFeeBps: 15,
		BuyerFeeBps:  15,
	}))

	require.NoError(t, BlockUser(context.Background(), svcCtx, ownerAddr, blockedAddr))

	return svcCtx, gw, clock
}

// eth 按 18 位精度换算数量
func eth(value string) decimal.Decimal {
	return decimal.RequireFromString(value).Mul(decimal.New(1, 18))
}

// list721 挂单一个测试 ERC721 并返回挂单
func list721(t *testing.T, svcCtx *svc.ServerCtx, gw *mock.Gateway, payToken string, price decimal.Decimal, duration int64, sellKind int8) *model.Listing {
	t.Helper()

	gw.SetNftOwner(nft721Addr, "0", sellerAddr)
	gw.SetApproval(nft721Addr, sellerAddr, operatorAddr, true)

	listing, err := ListNft721(context.Background(), svcCtx, ListNftParams{
		Caller:     sellerAddr,
		NftAddress: nft721Addr,
		TokenId:    "0",
		PayToken:   payToken,
		Price:      price,
		Duration:   duration,
		SellKind:   sellKind,
	})
	require.NoError(t, err)
	return listing
}

// list1155 挂单测试 ERC1155 并返回挂单
func list1155(t *testing.T, svcCtx *svc.ServerCtx, gw *mock.Gateway, quantity int64, payToken string, price decimal.Decimal, duration int64, sellKind int8) *model.Listing {
	t.Helper()

	gw.SetNftBalance(nft1155Addr, "0", sellerAddr, 4)
	gw.SetApproval(nft1155Addr, sellerAddr, operatorAddr, true)

	listing, err := ListNft1155(context.Background(), svcCtx, ListNftParams{
		Caller:     sellerAddr,
		NftAddress: nft1155Addr,
		TokenId:    "0",
		PayToken:   payToken,
		Price:      price,
		Quantity:   quantity,
		Duration:   duration,
		SellKind:   sellKind,
	})
	require.NoError(t, err)
	return listing
}

// reloadListing 直读数据库中的挂单状态
func reloadListing(t *testing.T, svcCtx *svc.ServerCtx, listingId int64) *model.Listing {
	t.Helper()
	listing, err := svcCtx.Dao.GetListingById(context.Background(), listingId)
	require.NoError(t, err)
	require.NotNil(t, listing)
	return listing
}

// lockOf 直读用户在某资产下的可退余额
func lockOf(t *testing.T, svcCtx *svc.ServerCtx, user, payToken string) decimal.Decimal {
	t.Helper()
	amount, err := svcCtx.Dao.GetLockedBalance(context.Background(), user, payToken)
	require.NoError(t, err)
	return amount
}
