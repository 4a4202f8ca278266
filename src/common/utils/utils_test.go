package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsHexAddress(t *testing.T) {
	require.True(t, IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	require.True(t, IsHexAddress("0x0000000000000000000000000000000000000000"))
	require.False(t, IsHexAddress("5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	require.False(t, IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAe"))
	require.False(t, IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeg"))
}

func TestIsNativeToken(t *testing.T) {
	require.True(t, IsNativeToken(""))
	require.True(t, IsNativeToken(ZeroAddress))
	require.True(t, IsNativeToken("0x0000000000000000000000000000000000000000"))
	require.False(t, IsNativeToken("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
}

func TestNormalizePage(t *testing.T) {
	page, pageSize := NormalizePage(0, 0)
	require.Equal(t, 1, page)
	require.Equal(t, DefaultPageSize, pageSize)

	page, pageSize = NormalizePage(-3, 500)
	require.Equal(t, 1, page)
	require.Equal(t, MaxPageSize, pageSize)

	page, pageSize = NormalizePage(7, 50)
	require.Equal(t, 7, page)
	require.Equal(t, 50, pageSize)

	require.Equal(t, 2, Min(2, 9))
	require.Equal(t, 9, Max(2, 9))
}

func TestToValidateAddress(t *testing.T) {
	// EIP-55 校验和参考样例
	require.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		ToValidateAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	require.Equal(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		ToValidateAddress("0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"))
}
