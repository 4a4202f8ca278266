package utils

// Min 返回两个整数中的较小值
func Min(x, y int) int {
	if x > y {
		return y
	}
	return x
}

// Max 返回两个整数中的较大值
func Max(x, y int) int {
	if x < y {
		return y
	}
	return x
}

// 分页边界
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage 规格化分页参数: 页码从 1 起, 页大小缺省 20 并封顶 100
func NormalizePage(page, pageSize int) (int, int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Max(page, 1), Min(pageSize, MaxPageSize)
}
