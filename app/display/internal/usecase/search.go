package usecase

import (
	"context"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/search_hub/app/display/internal/domain"
	"github.com/iWorld-y/search_hub/app/display/internal/repo"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/engine"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/prefs"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

// SearchUseCase 搜索业务逻辑
type SearchUseCase struct {
	sessions repo.SessionRepo
	log      *log.Helper
}

// NewSearchUseCase 创建搜索业务逻辑实例
func NewSearchUseCase(sessions repo.SessionRepo, logger log.Logger) *SearchUseCase {
	return &SearchUseCase{sessions: sessions, log: log.NewHelper(logger)}
}

// Search 提交查询、类别和页码，只请求最终所在的页
func (uc *SearchUseCase) Search(ctx context.Context, req *domain.SearchRequest) (engine.State, error) {
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		return engine.State{}, kerrors.BadRequest("INVALID_CATEGORY", err.Error())
	}

	s := uc.sessions.Session(ctx, req.SessionID)
	_, err = s.Search(ctx, req.Query, category, req.Page)
	return uc.result(ctx, s, err)
}

// Next 下一页
func (uc *SearchUseCase) Next(ctx context.Context, sessionID string) (engine.State, error) {
	s := uc.sessions.Session(ctx, sessionID)
	_, err := s.NextPage(ctx)
	return uc.result(ctx, s, err)
}

// Prev 上一页
func (uc *SearchUseCase) Prev(ctx context.Context, sessionID string) (engine.State, error) {
	s := uc.sessions.Session(ctx, sessionID)
	_, err := s.PrevPage(ctx)
	return uc.result(ctx, s, err)
}

// Refresh 跳过缓存重新请求当前页
func (uc *SearchUseCase) Refresh(ctx context.Context, sessionID string) (engine.State, error) {
	s := uc.sessions.Session(ctx, sessionID)
	_, err := s.Refresh(ctx)
	return uc.result(ctx, s, err)
}

// State 当前会话状态
func (uc *SearchUseCase) State(ctx context.Context, sessionID string) engine.State {
	return uc.sessions.Session(ctx, sessionID).State()
}

// Suggestions 搜索建议
func (uc *SearchUseCase) Suggestions(ctx context.Context, sessionID string) []string {
	return uc.sessions.Session(ctx, sessionID).Suggestions()
}

// UpdatePreferences 更新偏好，变化时当前会话重新加载
func (uc *SearchUseCase) UpdatePreferences(ctx context.Context, sessionID string, req *domain.PreferencesRequest) (engine.State, error) {
	s := uc.sessions.Session(ctx, sessionID)
	patch := prefs.Patch{
		Region:     req.Region,
		SafeSearch: req.Safe,
		PageSize:   req.PerPage,
	}
	if err := prefs.Validate(prefs.Apply(s.State().Preferences, patch)); err != nil {
		return s.State(), kerrors.BadRequest("INVALID_PREFERENCES", err.Error())
	}

	_, err := s.UpdatePreferences(ctx, patch)
	return uc.result(ctx, s, err)
}

// ClearRecent 清空最近搜索
func (uc *SearchUseCase) ClearRecent(ctx context.Context, sessionID string) engine.State {
	s := uc.sessions.Session(ctx, sessionID)
	s.ClearRecent()
	return s.State()
}

// EndSession 丢弃会话，本地数据不受影响
func (uc *SearchUseCase) EndSession(ctx context.Context, sessionID string) {
	uc.sessions.Drop(ctx, sessionID)
}

// result 把引擎错误映射为 kratos 错误；错误状态本身也会保留在会话里
func (uc *SearchUseCase) result(ctx context.Context, s *engine.Session, err error) (engine.State, error) {
	st := s.State()
	if err == nil {
		return st, nil
	}

	switch {
	case errors.Is(err, search.ErrSuperseded):
		return st, kerrors.Conflict("SUPERSEDED", err.Error())
	case errors.Is(err, search.ErrNoNextPage), errors.Is(err, search.ErrRandomAccess), errors.Is(err, search.ErrPageOutOfRange):
		return st, kerrors.BadRequest("INVALID_PAGE", err.Error())
	}

	msg := search.Message(err)
	switch search.Classify(err) {
	case search.KindConfig:
		return st, kerrors.ServiceUnavailable("PROVIDER_NOT_CONFIGURED", msg)
	case search.KindOffline:
		return st, kerrors.GatewayTimeout("UPSTREAM_UNREACHABLE", msg)
	default:
		uc.log.WithContext(ctx).Warnf("search failed: %v", err)
		return st, kerrors.New(502, "UPSTREAM_ERROR", msg)
	}
}
