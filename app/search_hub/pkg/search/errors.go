package search

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials provider 缺少必要的 key / id，属于配置错误
	ErrMissingCredentials = errors.New("missing provider credentials")
	// ErrEmptyQuery 查询为空
	ErrEmptyQuery = errors.New("query is empty")
	// ErrNoNextPage 游标分页没有下一页
	ErrNoNextPage = errors.New("no next page")
	// ErrRandomAccess 游标分页不支持直接跳页
	ErrRandomAccess = errors.New("provider does not support jumping to a page")
	// ErrPageOutOfRange 页码超过 MaxPage，或游标分页需要逐页请求的次数超过 MaxWalk
	ErrPageOutOfRange = fmt.Errorf("page out of range (max %d)", MaxPage)
	// ErrSuperseded 响应返回时输入已经变化，结果被丢弃
	ErrSuperseded = errors.New("response superseded by newer input")
	// ErrOffline 无法建立网络连接
	ErrOffline = errors.New("network unreachable")
	// ErrIgnorable 可忽略的副作用失败（剪贴板、分享、本地持久化）
	ErrIgnorable = errors.New("ignorable failure")
)

// FallbackMessage 无法提取错误信息时展示的文案
const FallbackMessage = "Failed to fetch search results."

// OfflineMessage 离线时展示的文案
const OfflineMessage = "You appear to be offline."

// ProviderError provider 调用失败，每次调用只返回一个错误对象
type ProviderError struct {
	Provider   string
	StatusCode int    // HTTP 状态码，网络错误时为 0
	APIMessage string // 上游结构化错误信息
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.APIMessage != "":
		return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.APIMessage)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s api error (status %d)", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return e.Provider + ": request failed"
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Kind 错误分类
type Kind int

const (
	KindNone Kind = iota
	KindConfig
	KindProvider
	KindOffline
	KindIgnorable
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindProvider:
		return "provider"
	case KindOffline:
		return "offline"
	case KindIgnorable:
		return "ignorable"
	default:
		return "none"
	}
}

// Classify 错误分类
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrIgnorable):
		return KindIgnorable
	case errors.Is(err, ErrMissingCredentials):
		return KindConfig
	case errors.Is(err, ErrOffline):
		return KindOffline
	default:
		return KindProvider
	}
}

// Message 提取展示给用户的错误信息：
// 上游结构化错误信息 > 错误本身的信息 > 固定文案
func Message(err error) string {
	if err == nil {
		return ""
	}

	var pe *ProviderError
	if errors.As(err, &pe) && pe.APIMessage != "" {
		return pe.APIMessage
	}
	if errors.Is(err, ErrOffline) {
		return OfflineMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}

// Ignorable 将副作用失败标记为可忽略
func Ignorable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrIgnorable, err)
}
