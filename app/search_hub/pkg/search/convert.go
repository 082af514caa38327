package search

import (
	"strconv"
	"strings"
)

// Int64 将 JSON 中的数字或数字字符串转换为 int64，无法识别时返回 0
func Int64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// String 取字符串字段，非字符串返回空
func String(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// Object 取对象字段
func Object(obj map[string]any, key string) RawItem {
	m, _ := obj[key].(map[string]any)
	return m
}
