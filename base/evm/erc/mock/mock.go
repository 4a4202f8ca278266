package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Gateway 内存态链上网关, 测试专用
// 维护一套最小的 ERC20/721/1155 账本, 并记录全部转移调用便于断言
type Gateway struct {
	mu sync.Mutex

	operator string

	// erc721: nftAddr:tokenId -> owner
	nftOwners map[string]string
	// erc1155: nftAddr:tokenId:owner -> balance
	nftBalances map[string]int64
	// nftAddr:owner:operator -> approved
	approvals map[string]bool
	// token:owner -> balance (token 为零地址时表示原生币金库视角的外部账户余额)
	fungible map[string]decimal.Decimal

	// FailNextTransfer 置位后下一次转移返回错误 (模拟链上转移被拒)
	FailNextTransfer bool

	// Transfers 按序记录的转移调用, 形如 "erc20 token from->to amount"
	Transfers []string
}

func NewGateway(operator string) *Gateway {
	return &Gateway{
		operator:    strings.ToLower(operator),
		nftOwners:   make(map[string]string),
		nftBalances: make(map[string]int64),
		approvals:   make(map[string]bool),
		fungible:    make(map[string]decimal.Decimal),
	}
}

func key(parts ...string) string {
	return strings.ToLower(strings.Join(parts, ":"))
}

// SetNftOwner 铸造/指定 ERC721 归属
func (g *Gateway) SetNftOwner(nftAddr, tokenId, owner string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nftOwners[key(nftAddr, tokenId)] = strings.ToLower(owner)
}

// SetNftBalance 铸造/指定 ERC1155 持仓
func (g *Gateway) SetNftBalance(nftAddr, tokenId, owner string, balance int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nftBalances[key(nftAddr, tokenId, owner)] = balance
}

// SetApproval 设置批量授权
func (g *Gateway) SetApproval(nftAddr, owner, operator string, approved bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.approvals[key(nftAddr, owner, operator)] = approved
}

// SetFungibleBalance 设置 ERC20/原生币余额
func (g *Gateway) SetFungibleBalance(token, owner string, balance decimal.Decimal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fungible[key(token, owner)] = balance
}

// FungibleBalance 查询 ERC20/原生币余额
func (g *Gateway) FungibleBalance(token, owner string) decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fungible[key(token, owner)]
}

func (g *Gateway) Operator() string {
	return g.operator
}

func (g *Gateway) OwnerOf(_ context.Context, nftAddr string, tokenId string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	owner, ok := g.nftOwners[key(nftAddr, tokenId)]
	if !ok {
		return "", errors.Errorf("token %s not minted on %s", tokenId, nftAddr)
	}
	return owner, nil
}

func (g *Gateway) BalanceOf1155(_ context.Context, nftAddr string, owner string, tokenId string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nftBalances[key(nftAddr, tokenId, owner)], nil
}

func (g *Gateway) IsApprovedForAll(_ context.Context, nftAddr string, owner string, operator string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.approvals[key(nftAddr, owner, operator)], nil
}

func (g *Gateway) TransferNft721(_ context.Context, nftAddr string, from string, to string, tokenId string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failIfRequested(); err != nil {
		return err
	}
	k := key(nftAddr, tokenId)
	if g.nftOwners[k] != strings.ToLower(from) {
		return errors.Errorf("transfer of token %s from non-owner %s", tokenId, from)
	}
	g.nftOwners[k] = strings.ToLower(to)
	g.record("erc721 %s token %s %s->%s", nftAddr, tokenId, from, to)
	return nil
}

func (g *Gateway) TransferNft1155(_ context.Context, nftAddr string, from string, to string, tokenId string, amount int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failIfRequested(); err != nil {
		return err
	}
	fromKey := key(nftAddr, tokenId, from)
	if g.nftBalances[fromKey] < amount {
		return errors.Errorf("insufficient erc1155 balance of %s for token %s", from, tokenId)
	}
	g.nftBalances[fromKey] -= amount
	g.nftBalances[key(nftAddr, tokenId, to)] += amount
	g.record("erc1155 %s token %s x%d %s->%s", nftAddr, tokenId, amount, from, to)
	return nil
}

func (g *Gateway) TransferErc20From(_ context.Context, token string, from string, to string, amount decimal.Decimal) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failIfRequested(); err != nil {
		return err
	}
	return g.moveFungible(token, from, to, amount)
}

func (g *Gateway) TransferErc20(_ context.Context, token string, to string, amount decimal.Decimal) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failIfRequested(); err != nil {
		return err
	}
	return g.moveFungible(token, g.operator, to, amount)
}

func (g *Gateway) TransferNative(_ context.Context, to string, amount decimal.Decimal) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failIfRequested(); err != nil {
		return err
	}
	return g.moveFungible("0x0000000000000000000000000000000000000000", g.operator, to, amount)
}

func (g *Gateway) moveFungible(token, from, to string, amount decimal.Decimal) error {
	fromKey := key(token, from)
	if g.fungible[fromKey].LessThan(amount) {
		return errors.Errorf("insufficient balance of %s for token %s", from, token)
	}
	g.fungible[fromKey] = g.fungible[fromKey].Sub(amount)
	toKey := key(token, to)
	g.fungible[toKey] = g.fungible[toKey].Add(amount)
	g.record("fungible %s %s->%s %s", token, from, to, amount.String())
	return nil
}

func (g *Gateway) failIfRequested() error {
	if g.FailNextTransfer {
		g.FailNextTransfer = false
		return errors.New("transfer rejected by chain")
	}
	return nil
}

func (g *Gateway) record(format string, args ...interface{}) {
	g.Transfers = append(g.Transfers, strings.ToLower(fmt.Sprintf(format, args...)))
}
