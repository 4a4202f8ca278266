package utils

import (
	"regexp"
	"strings"

	"github.com/anyswap/CrossChain-Bridge/common"
	"github.com/go-playground/validator/v10"
)

var (
	addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

	// ZeroAddress 原生币支付资产哨兵
	ZeroAddress = "0x0000000000000000000000000000000000000000"
)

// IsHexAddress 校验以太坊地址格式
func IsHexAddress(addr string) bool {
	return addressPattern.MatchString(addr)
}

// NormalizeAddress 统一地址入库格式 (小写 hex)
func NormalizeAddress(addr string) string {
	return strings.ToLower(addr)
}

// IsNativeToken 判断支付资产是否为原生币
func IsNativeToken(addr string) bool {
	return addr == "" || NormalizeAddress(addr) == ZeroAddress
}

// addressValidator 请求参数里 address tag 对应的验证器
var addressValidator validator.Func = func(fl validator.FieldLevel) bool {
	addr, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return IsHexAddress(addr)
}

// RegisterValidators 注册自定义验证器到 gin binding 的 validator 实例
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("address", addressValidator)
}

// ToValidateAddress 将以太坊地址转换为校验和格式 (EIP-55)
// 对地址小写形式做 Keccak-256, 按哈希每一位决定对应字符大小写
func ToValidateAddress(address string) string {
	addrLowerStr := strings.ToLower(address)
	if strings.HasPrefix(addrLowerStr, "0x") {
		addrLowerStr = addrLowerStr[2:]
	}
	hash := common.Keccak256Hash([]byte(addrLowerStr))
	hashStr := strings.TrimPrefix(hash.Hex(), "0x")

	var sb strings.Builder
	sb.WriteString("0x")
	for i, c := range addrLowerStr {
		if c >= '0' && c <= '9' {
			sb.WriteRune(c)
			continue
		}
		if hashStr[i] >= '8' {
			sb.WriteString(strings.ToUpper(string(c)))
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
