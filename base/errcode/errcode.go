package errcode

import (
	"github.com/pkg/errors"
)

// 错误码分段:
// 200        成功
// 500        未知错误
// 10xxx      参数/鉴权类错误
// 30xxx      市场业务错误 (listing / 结算 / 托管)
const (
	CodeOK            = 200
	CodeUnexpected    = 500
	CodeCustom        = 7000
	CodeInvalidParams = 10001
	CodeUnauthorized  = 10002

	CodeUserNotApproved        = 30001
	CodeInvalidOwner           = 30002
	CodeMarketplaceNotApproved = 30003
	CodeNftNotListed           = 30004
	CodeBuySelfNft             = 30005
	CodeInvalidSellKind        = 30006
	CodeInsufficientFunds      = 30007
	CodeBidLowerPrice          = 30008
)

// Err 带错误码的业务错误
// 业务层通过 errors.Wrapf 追加上下文(地址/ID/金额), 错误码沿 Cause 链保留
type Err struct {
	code int
	msg  string
}

func NewErr(code int, msg string) *Err {
	return &Err{code: code, msg: msg}
}

// NewCustomErr 构造一个自定义文案的错误 (HTTP 层兜底用)
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

func (e *Err) Error() string {
	return e.msg
}

func (e *Err) Code() int {
	return e.code
}

var (
	ErrUnexpected    = NewErr(CodeUnexpected, "server unexpected error")
	ErrInvalidParams = NewErr(CodeInvalidParams, "invalid params")
	// ErrUnauthorized 非管理员调用管理接口
	ErrUnauthorized = NewErr(CodeUnauthorized, "caller is not the owner")

	// ErrUserNotApproved 被拉黑的用户尝试挂单/出价
	ErrUserNotApproved = NewErr(CodeUserNotApproved, "user is blocked")
	// ErrInvalidOwner 调用者不持有目标资产或 listing
	ErrInvalidOwner = NewErr(CodeInvalidOwner, "caller is not the owner of the asset")
	// ErrMarketplaceNotApproved 资产未授权给市场合约转移
	ErrMarketplaceNotApproved = NewErr(CodeMarketplaceNotApproved, "marketplace is not approved to transfer the asset")
	// ErrNftNotListed listing 不存在/已失效, 或拍卖已过截止时间
	ErrNftNotListed = NewErr(CodeNftNotListed, "nft is not listed for sale")
	// ErrBuySelfNft 卖家购买/竞拍自己的 listing
	ErrBuySelfNft = NewErr(CodeBuySelfNft, "cannot buy your own nft")
	// ErrInvalidSellKind 用错误的交易方式操作 listing
	ErrInvalidSellKind = NewErr(CodeInvalidSellKind, "invalid sell kind for this listing")
	// ErrInsufficientFunds 出价不足或可提余额为零
	ErrInsufficientFunds = NewErr(CodeInsufficientFunds, "insufficient funds")
	// ErrBidLowerPrice 出价未超过当前最高价
	ErrBidLowerPrice = NewErr(CodeBidLowerPrice, "bid is not higher than current price")
)

// Is 判断 err 的根因是否为指定的业务错误
func Is(err error, target *Err) bool {
	if err == nil || target == nil {
		return false
	}
	e, ok := errors.Cause(err).(*Err)
	return ok && e.code == target.code
}

// ParseErr 从错误链中提取业务错误
// 外层 Wrap 的上下文文案保留, 非业务错误统一归为 ErrUnexpected
func ParseErr(err error) *Err {
	if err == nil {
		return NewErr(CodeOK, "successful")
	}
	if e, ok := errors.Cause(err).(*Err); ok {
		return NewErr(e.code, err.Error())
	}
	return NewErr(CodeUnexpected, err.Error())
}
