package erc

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// 最小可用 ABI, 仅包含引擎消费的方法
const (
	erc20AbiJson = `[
{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"type":"function"},
{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"},
{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function"}]`

	erc721AbiJson = `[
{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"type":"function"},
{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"name":"isApprovedForAll","outputs":[{"name":"","type":"bool"}],"type":"function"},
{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"safeTransferFrom","outputs":[],"type":"function"}]`

	erc1155AbiJson = `[
{"constant":true,"inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
{"constant":true,"inputs":[{"name":"account","type":"address"},{"name":"operator","type":"address"}],"name":"isApprovedForAll","outputs":[{"name":"","type":"bool"}],"type":"function"},
{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"id","type":"uint256"},{"name":"amount","type":"uint256"},{"name":"data","type":"bytes"}],"name":"safeTransferFrom","outputs":[],"type":"function"}]`
)

const (
	defaultGasLimit    = uint64(300000)
	nativeGasLimit     = uint64(21000)
	receiptPollPeriod  = 2 * time.Second
	receiptPollTimeout = 2 * time.Minute
)

// Client 基于 ethclient 的网关实现
// 写操作由运营账户私钥签名发送, 并等待回执确认
type Client struct {
	client     *ethclient.Client
	chainID    *big.Int
	privateKey *ecdsa.PrivateKey
	operator   common.Address

	erc20Abi   abi.ABI
	erc721Abi  abi.ABI
	erc1155Abi abi.ABI
}

// NewClient 连接节点并加载运营账户
func NewClient(ctx context.Context, endpoint string, operatorKeyHex string) (*Client, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed on dial evm endpoint")
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed on get chain id")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(operatorKeyHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse operator key")
	}

	erc20Abi, err := abi.JSON(strings.NewReader(erc20AbiJson))
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse erc20 abi")
	}
	erc721Abi, err := abi.JSON(strings.NewReader(erc721AbiJson))
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse erc721 abi")
	}
	erc1155Abi, err := abi.JSON(strings.NewReader(erc1155AbiJson))
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse erc1155 abi")
	}

	return &Client{
		client:     client,
		chainID:    chainID,
		privateKey: privateKey,
		operator:   crypto.PubkeyToAddress(privateKey.PublicKey),
		erc20Abi:   erc20Abi,
		erc721Abi:  erc721Abi,
		erc1155Abi: erc1155Abi,
	}, nil
}

func (c *Client) Operator() string {
	return strings.ToLower(c.operator.Hex())
}

func (c *Client) OwnerOf(ctx context.Context, nftAddr string, tokenId string) (string, error) {
	id, err := parseTokenId(tokenId)
	if err != nil {
		return "", err
	}
	raw, err := c.call(ctx, nftAddr, c.erc721Abi, "ownerOf", id)
	if err != nil {
		return "", errors.Wrap(err, "failed on call ownerOf")
	}
	out, err := c.erc721Abi.Unpack("ownerOf", raw)
	if err != nil {
		return "", errors.Wrap(err, "failed on unpack ownerOf")
	}
	return strings.ToLower(out[0].(common.Address).Hex()), nil
}

func (c *Client) BalanceOf1155(ctx context.Context, nftAddr string, owner string, tokenId string) (int64, error) {
	id, err := parseTokenId(tokenId)
	if err != nil {
		return 0, err
	}
	raw, err := c.call(ctx, nftAddr, c.erc1155Abi, "balanceOf", common.HexToAddress(owner), id)
	if err != nil {
		return 0, errors.Wrap(err, "failed on call balanceOf")
	}
	out, err := c.erc1155Abi.Unpack("balanceOf", raw)
	if err != nil {
		return 0, errors.Wrap(err, "failed on unpack balanceOf")
	}
	return out[0].(*big.Int).Int64(), nil
}

func (c *Client) IsApprovedForAll(ctx context.Context, nftAddr string, owner string, operator string) (bool, error) {
	raw, err := c.call(ctx, nftAddr, c.erc721Abi, "isApprovedForAll",
		common.HexToAddress(owner), common.HexToAddress(operator))
	if err != nil {
		return false, errors.Wrap(err, "failed on call isApprovedForAll")
	}
	out, err := c.erc721Abi.Unpack("isApprovedForAll", raw)
	if err != nil {
		return false, errors.Wrap(err, "failed on unpack isApprovedForAll")
	}
	return out[0].(bool), nil
}

func (c *Client) TransferNft721(ctx context.Context, nftAddr string, from string, to string, tokenId string) error {
	id, err := parseTokenId(tokenId)
	if err != nil {
		return err
	}
	data, err := c.erc721Abi.Pack("safeTransferFrom",
		common.HexToAddress(from), common.HexToAddress(to), id)
	if err != nil {
		return errors.Wrap(err, "failed on pack erc721 safeTransferFrom")
	}
	return c.sendAndWait(ctx, nftAddr, big.NewInt(0), data)
}

func (c *Client) TransferNft1155(ctx context.Context, nftAddr string, from string, to string, tokenId string, amount int64) error {
	id, err := parseTokenId(tokenId)
	if err != nil {
		return err
	}
	data, err := c.erc1155Abi.Pack("safeTransferFrom",
		common.HexToAddress(from), common.HexToAddress(to), id, big.NewInt(amount), []byte{})
	if err != nil {
		return errors.Wrap(err, "failed on pack erc1155 safeTransferFrom")
	}
	return c.sendAndWait(ctx, nftAddr, big.NewInt(0), data)
}

func (c *Client) TransferErc20From(ctx context.Context, token string, from string, to string, amount decimal.Decimal) error {
	data, err := c.erc20Abi.Pack("transferFrom",
		common.HexToAddress(from), common.HexToAddress(to), amount.BigInt())
	if err != nil {
		return errors.Wrap(err, "failed on pack erc20 transferFrom")
	}
	return c.sendAndWait(ctx, token, big.NewInt(0), data)
}

func (c *Client) TransferErc20(ctx context.Context, token string, to string, amount decimal.Decimal) error {
	data, err := c.erc20Abi.Pack("transfer", common.HexToAddress(to), amount.BigInt())
	if err != nil {
		return errors.Wrap(err, "failed on pack erc20 transfer")
	}
	return c.sendAndWait(ctx, token, big.NewInt(0), data)
}

func (c *Client) TransferNative(ctx context.Context, to string, amount decimal.Decimal) error {
	return c.sendAndWait(ctx, to, amount.BigInt(), nil)
}

// call 只读合约调用
func (c *Client) call(ctx context.Context, contract string, parsedAbi abi.ABI, method string, args ...interface{}) ([]byte, error) {
	data, err := parsedAbi.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed on pack %s", method)
	}
	to := common.HexToAddress(contract)
	return c.client.CallContract(ctx, ethereum.CallMsg{
		From: c.operator,
		To:   &to,
		Data: data,
	}, nil)
}

// sendAndWait 以运营账户发交易并等待回执
// 回执状态非成功视为转移被拒绝, 由调用方回滚整个业务操作
func (c *Client) sendAndWait(ctx context.Context, contract string, value *big.Int, data []byte) error {
	nonce, err := c.client.PendingNonceAt(ctx, c.operator)
	if err != nil {
		return errors.Wrap(err, "failed on get pending nonce")
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return errors.Wrap(err, "failed on suggest gas price")
	}

	gasLimit := defaultGasLimit
	if len(data) == 0 {
		gasLimit = nativeGasLimit
	}

	to := common.HexToAddress(contract)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.privateKey)
	if err != nil {
		return errors.Wrap(err, "failed on sign tx")
	}
	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return errors.Wrap(err, "failed on send tx")
	}

	receipt, err := c.waitMined(ctx, signedTx.Hash())
	if err != nil {
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return errors.Errorf("tx %s reverted", signedTx.Hash().Hex())
	}
	return nil
}

func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, receiptPollTimeout)
	defer cancel()

	ticker := time.NewTicker(receiptPollPeriod)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "failed on wait receipt for tx %s", hash.Hex())
		case <-ticker.C:
		}
	}
}

func parseTokenId(tokenId string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(tokenId, 10)
	if !ok {
		return nil, errors.Errorf("invalid token id %s", tokenId)
	}
	return id, nil
}
