package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/search_hub/app/display/internal/repo"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

type libraryRepo struct {
	data *Data
	log  *log.Helper
}

// NewLibraryRepo 基于共享 Profile 的本地数据仓库
func NewLibraryRepo(data *Data, logger log.Logger) repo.LibraryRepo {
	return &libraryRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *libraryRepo) Recent(ctx context.Context) []string {
	return r.data.profile.History.List()
}

func (r *libraryRepo) ListSaved(ctx context.Context) []model.SavedItem {
	return r.data.profile.Saved.List()
}

func (r *libraryRepo) AddSaved(ctx context.Context, item model.SavedItem) []model.SavedItem {
	return r.data.profile.Saved.Add(item)
}

func (r *libraryRepo) RemoveSaved(ctx context.Context, link string) []model.SavedItem {
	return r.data.profile.Saved.Remove(link)
}

func (r *libraryRepo) ClearSaved(ctx context.Context) {
	r.data.profile.ClearSaved()
}

func (r *libraryRepo) Preferences(ctx context.Context) model.Preferences {
	return r.data.profile.Prefs.Load()
}

func (r *libraryRepo) ClearCache(ctx context.Context) int {
	return r.data.profile.ClearCache()
}

func (r *libraryRepo) Reset(ctx context.Context) {
	r.log.WithContext(ctx).Info("reset all local data")
	r.data.profile.ResetAll()
}

type previewRepo struct {
	data *Data
}

// NewPreviewRepo 正文预览仓库
func NewPreviewRepo(data *Data) repo.PreviewRepo {
	return &previewRepo{data: data}
}

func (r *previewRepo) Fetch(ctx context.Context, link string) (*model.Preview, error) {
	return r.data.preview.Fetch(ctx, link)
}
