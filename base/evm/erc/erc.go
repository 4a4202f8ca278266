package erc

import (
	"context"

	"github.com/shopspring/decimal"
)

// NativeToken 原生币的支付资产哨兵地址
const NativeToken = "0x0000000000000000000000000000000000000000"

// Erc 链上资产网关
// 市场引擎只消费资产的 所有权查询 / 授权查询 / 转移 三类能力,
// ERC20 / ERC721 / ERC1155 三种实现均由该接口承接,
// 原生币支付走 TransferNative (引擎运营账户金库出金)
type Erc interface {
	// Operator 市场方的链上运营账户地址 (授权检查与金库出金主体)
	Operator() string

	// OwnerOf ERC721 所有权查询
	OwnerOf(ctx context.Context, nftAddr string, tokenId string) (string, error)
	// BalanceOf1155 ERC1155 持仓查询
	BalanceOf1155(ctx context.Context, nftAddr string, owner string, tokenId string) (int64, error)
	// IsApprovedForAll ERC721/ERC1155 通用的批量授权查询
	IsApprovedForAll(ctx context.Context, nftAddr string, owner string, operator string) (bool, error)

	// TransferNft721 转移单个 ERC721
	TransferNft721(ctx context.Context, nftAddr string, from string, to string, tokenId string) error
	// TransferNft1155 转移指定数量的 ERC1155
	TransferNft1155(ctx context.Context, nftAddr string, from string, to string, tokenId string, amount int64) error

	// TransferErc20From 从 from 账户划转 ERC20 (需事先 approve 给 Operator)
	TransferErc20From(ctx context.Context, token string, from string, to string, amount decimal.Decimal) error
	// TransferErc20 从运营账户金库划出 ERC20
	TransferErc20(ctx context.Context, token string, to string, amount decimal.Decimal) error
	// TransferNative 从运营账户金库划出原生币
	TransferNative(ctx context.Context, to string, amount decimal.Decimal) error
}
