package engine

import (
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

// Status 搜索状态机的状态
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// MarshalText 以字符串形式输出到 JSON
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State 会话状态快照，调用方拿到的是副本
type State struct {
	Query       string                 `json:"query"`
	Category    model.Category         `json:"category"`
	Page        int                    `json:"page"`
	Pages       map[model.Category]int `json:"pages"`
	Preferences model.Preferences      `json:"preferences"`
	Status      Status                 `json:"status"`
	Result      *model.Page            `json:"result,omitempty"`
	Error       string                 `json:"error,omitempty"`
	ErrorKind   string                 `json:"errorKind,omitempty"`
	// FromCache 结果来自本地缓存，未发起网络请求
	FromCache bool `json:"fromCache"`
	// Empty 请求成功但归一化后没有结果，不属于错误
	Empty bool `json:"empty"`
	// ResetScroll 提示展示层回到顶部
	ResetScroll bool     `json:"resetScroll"`
	HasNext     bool     `json:"hasNext"`
	HasPrev     bool     `json:"hasPrev"`
	Recent      []string `json:"recent"`
}
