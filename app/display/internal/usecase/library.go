package usecase

import (
	"context"
	"errors"
	"strings"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/search_hub/app/display/internal/domain"
	"github.com/iWorld-y/search_hub/app/display/internal/repo"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/preview"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

// LibraryUseCase 最近搜索、收藏、偏好、缓存以及正文预览
type LibraryUseCase struct {
	library  repo.LibraryRepo
	preview  repo.PreviewRepo
	sessions repo.SessionRepo
	log      *log.Helper
}

// NewLibraryUseCase 创建本地数据业务逻辑实例
func NewLibraryUseCase(library repo.LibraryRepo, preview repo.PreviewRepo, sessions repo.SessionRepo, logger log.Logger) *LibraryUseCase {
	return &LibraryUseCase{
		library:  library,
		preview:  preview,
		sessions: sessions,
		log:      log.NewHelper(logger),
	}
}

func (uc *LibraryUseCase) Recent(ctx context.Context) []string {
	return uc.library.Recent(ctx)
}

func (uc *LibraryUseCase) ListSaved(ctx context.Context) []model.SavedItem {
	return uc.library.ListSaved(ctx)
}

// Save 收藏一条结果，链接已存在时保持原列表
func (uc *LibraryUseCase) Save(ctx context.Context, req *domain.SaveRequest) ([]model.SavedItem, error) {
	link := strings.TrimSpace(req.Link)
	if link == "" {
		return nil, kerrors.BadRequest("INVALID_ITEM", "link is required")
	}

	category := model.CategoryWeb
	if req.Type != "" {
		c, err := model.ParseCategory(req.Type)
		if err != nil {
			return nil, kerrors.BadRequest("INVALID_ITEM", err.Error())
		}
		category = c
	}

	return uc.library.AddSaved(ctx, model.SavedItem{
		Title:   req.Title,
		Link:    link,
		Snippet: req.Snippet,
		Type:    category,
	}), nil
}

func (uc *LibraryUseCase) Unsave(ctx context.Context, link string) []model.SavedItem {
	return uc.library.RemoveSaved(ctx, link)
}

func (uc *LibraryUseCase) ClearSaved(ctx context.Context) {
	uc.library.ClearSaved(ctx)
}

func (uc *LibraryUseCase) Preferences(ctx context.Context) model.Preferences {
	return uc.library.Preferences(ctx)
}

// ClearCache 清空结果缓存，返回删除的条目数
func (uc *LibraryUseCase) ClearCache(ctx context.Context) *domain.CacheCleared {
	n := uc.library.ClearCache(ctx)
	uc.log.WithContext(ctx).Infof("cleared %d cached pages", n)
	return &domain.CacheCleared{Removed: n}
}

// Reset 清空全部本地数据，并丢弃持有旧偏好的会话
func (uc *LibraryUseCase) Reset(ctx context.Context) {
	uc.library.Reset(ctx)
	uc.sessions.DropAll(ctx)
}

// Preview 抓取结果页正文
func (uc *LibraryUseCase) Preview(ctx context.Context, link string) (*model.Preview, error) {
	p, err := uc.preview.Fetch(ctx, link)
	if err == nil {
		return p, nil
	}

	if errors.Is(err, preview.ErrInvalidURL) {
		return nil, kerrors.BadRequest("INVALID_LINK", err.Error())
	}
	uc.log.WithContext(ctx).Warnf("preview %s failed: %v", link, err)
	return nil, kerrors.New(502, "UPSTREAM_ERROR", search.Message(err))
}
