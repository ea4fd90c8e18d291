// Package dateutil 提供日历日相关的解析与归一化。
// 所有归一化均在 UTC 下进行。
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout 日期（无时间部分）格式
const DateLayout = "2006-01-02"

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// Parse 解析 YYYY-MM-DD 或 RFC 3339 格式的日期时间
// 不带时区的输入按 UTC 解释
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("日期不能为空")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期 %q", s)
}

// NormalizeDay 将时间截断为所在 UTC 日历日的零点
func NormalizeDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay 返回所在 UTC 日历日的最后一毫秒（23:59:59.999）
func EndOfDay(t time.Time) time.Time {
	return NormalizeDay(t).Add(24*time.Hour - time.Millisecond)
}
