package utils

import (
	"regexp"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Wireless Mouse", "wireless-mouse"},
		{"  Lots   of Spaces  ", "lots-of-spaces"},
		{"Café & Co.", "café-co"},
		{"UPPER_case-mixed", "upper-case-mixed"},
		{"!!!", ""},
		{"Already-Slugged", "already-slugged"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugWithTimestamp(t *testing.T) {
	got := SlugWithTimestamp("desk-lamp")
	if !strings.HasPrefix(got, "desk-lamp-") {
		t.Errorf("SlugWithTimestamp = %q, 应保留原 slug 前缀", got)
	}
	if matched, _ := regexp.MatchString(`^desk-lamp-\d+$`, got); !matched {
		t.Errorf("SlugWithTimestamp = %q, 后缀应是数字时间戳", got)
	}
}

func TestFormatCodes(t *testing.T) {
	if got := FormatVendorID(7); got != "V00007" {
		t.Errorf("FormatVendorID(7) = %q, want V00007", got)
	}
	if got := FormatVendorID(123456); got != "V123456" {
		t.Errorf("FormatVendorID(123456) = %q, 超长序列不截断", got)
	}
	if got := FormatProductCode(42); got != "UPID-000042" {
		t.Errorf("FormatProductCode(42) = %q, want UPID-000042", got)
	}
}
