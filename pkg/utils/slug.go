package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Slugify 把名称转成 URL slug
// 非字母数字统一折叠成单个 '-'，首尾不留分隔符
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // 抑制开头的 '-'
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SlugWithTimestamp slug 冲突时追加时间戳后缀
func SlugWithTimestamp(slug string) string {
	return fmt.Sprintf("%s-%d", slug, time.Now().Unix())
}
