package repo

import (
	"context"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/engine"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

// SessionRepo 按会话 ID 管理搜索会话
type SessionRepo interface {
	// Session 获取会话，不存在时创建
	Session(ctx context.Context, id string) *engine.Session
	// Drop 删除会话
	Drop(ctx context.Context, id string)
	// DropAll 删除全部会话，本地数据重置后调用
	DropAll(ctx context.Context)
}

// LibraryRepo 本地数据：最近搜索、收藏、偏好、缓存
type LibraryRepo interface {
	Recent(ctx context.Context) []string
	ListSaved(ctx context.Context) []model.SavedItem
	AddSaved(ctx context.Context, item model.SavedItem) []model.SavedItem
	RemoveSaved(ctx context.Context, link string) []model.SavedItem
	ClearSaved(ctx context.Context)
	Preferences(ctx context.Context) model.Preferences
	ClearCache(ctx context.Context) int
	Reset(ctx context.Context)
}

// PreviewRepo 结果正文预览
type PreviewRepo interface {
	Fetch(ctx context.Context, link string) (*model.Preview, error)
}
