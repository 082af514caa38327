package search

import (
	"context"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

// Provider 定义每个类别的上游搜索适配器
type Provider interface {
	// Name provider 名称，用于日志与错误信息
	Name() string
	// Category 服务的结果类别
	Category() model.Category
	// Paging 该 provider 的分页方式
	Paging() Paging
	// Search 执行一次网络请求，返回 provider 原始响应
	Search(ctx context.Context, req *Request) (RawResponse, error)
}

// Paging 分页方式
type Paging int

const (
	// PagingOffset 页码分页，由页码换算起始偏移
	PagingOffset Paging = iota
	// PagingToken 不透明游标分页，下一页游标来自上一次响应
	PagingToken
)

func (p Paging) String() string {
	if p == PagingToken {
		return "token"
	}
	return "offset"
}

// Request 通用搜索请求
type Request struct {
	Query       string
	Page        int
	Cursor      string // 仅 PagingToken 使用，第一页为空
	Preferences model.Preferences
}

const (
	// MaxPage 允许请求的最大页码
	MaxPage = 100
	// MaxWalk 游标分页一次跳转最多逐页请求的次数
	MaxWalk = 10
)

// Offset 页码换算为 1 起始的结果偏移：(page-1)*pageSize + 1。
// page 截断到 [1, MaxPage]，pageSize 至少为 1
func Offset(page, pageSize int) int {
	page = min(max(page, 1), MaxPage)
	pageSize = max(pageSize, 1)
	return (page-1)*pageSize + 1
}

// RawItem 上游返回的单条原始 JSON 对象
type RawItem map[string]any

// RawResponse 各类别的原始响应，取值只能是 *WebResponse / *ImageResponse / *NewsResponse
type RawResponse interface {
	Category() model.Category
	sealed()
}

// WebResponse 网页搜索原始响应
type WebResponse struct {
	Items           []RawItem
	TotalResults    int64
	NextCursor      string
	RelatedKeywords []any // 字符串或 {"keyword": "..."} 对象
	KnowledgePanel  RawItem
}

// ImageResponse 图片搜索原始响应
type ImageResponse struct {
	Items []RawItem
}

// NewsResponse 新闻搜索原始响应
type NewsResponse struct {
	Items         []RawItem
	TotalArticles int64
}

func (*WebResponse) Category() model.Category   { return model.CategoryWeb }
func (*ImageResponse) Category() model.Category { return model.CategoryImage }
func (*NewsResponse) Category() model.Category  { return model.CategoryNews }

func (*WebResponse) sealed()   {}
func (*ImageResponse) sealed() {}
func (*NewsResponse) sealed()  {}

// FirstList 按顺序查找第一个非空的对象数组字段
func FirstList(obj map[string]any, keys ...string) []RawItem {
	for _, k := range keys {
		list, ok := obj[k].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		items := make([]RawItem, 0, len(list))
		for _, v := range list {
			if m, ok := v.(map[string]any); ok {
				items = append(items, RawItem(m))
			}
		}
		return items
	}
	return nil
}
