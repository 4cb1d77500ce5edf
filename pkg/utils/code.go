package utils

import "fmt"

// FormatVendorID 商家编号，序列值左补零
func FormatVendorID(seq int64) string {
	return fmt.Sprintf("V%05d", seq)
}

// FormatProductCode 主商品编号
func FormatProductCode(seq int64) string {
	return fmt.Sprintf("UPID-%06d", seq)
}
