package service

import (
	"fmt"
	"strconv"
	"strings"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/search_hub/app/display/internal/domain"
	"github.com/iWorld-y/search_hub/app/display/internal/usecase"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

// SessionHeader 客户端会话标识，缺省时由服务端生成并在响应头返回
const SessionHeader = "X-Session-ID"

type DisplayService struct {
	ucSearch  *usecase.SearchUseCase
	ucLibrary *usecase.LibraryUseCase
	log       *log.Helper
}

func NewDisplayService(ucSearch *usecase.SearchUseCase, ucLibrary *usecase.LibraryUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		ucSearch:  ucSearch,
		ucLibrary: ucLibrary,
		log:       log.NewHelper(logger),
	}
}

// RegisterHTTP 注册 /api 下的全部路由
func (s *DisplayService) RegisterHTTP(srv *http.Server) {
	r := srv.Route("/api")

	r.GET("/search", s.Search)
	r.POST("/search/next", s.Next)
	r.POST("/search/prev", s.Prev)
	r.POST("/search/refresh", s.Refresh)
	r.GET("/state", s.State)
	r.DELETE("/session", s.EndSession)
	r.GET("/suggestions", s.Suggestions)

	r.GET("/recent", s.Recent)
	r.DELETE("/recent", s.ClearRecent)
	r.GET("/saved", s.ListSaved)
	r.POST("/saved", s.Save)
	r.DELETE("/saved", s.Unsave)
	r.GET("/preferences", s.Preferences)
	r.PUT("/preferences", s.UpdatePreferences)
	r.DELETE("/cache", s.ClearCache)
	r.POST("/reset", s.Reset)
	r.GET("/preview", s.Preview)
}

// sessionID 读取会话标识，没有时生成一个新的
func sessionID(ctx http.Context) string {
	id := strings.TrimSpace(ctx.Header().Get(SessionHeader))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Response().Header().Set(SessionHeader, id)
	return id
}

// Search GET /api/search?q=&category=&page=
func (s *DisplayService) Search(ctx http.Context) error {
	q := ctx.Query()
	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > search.MaxPage {
			return kerrors.BadRequest("INVALID_PAGE", fmt.Sprintf("page must be between 1 and %d", search.MaxPage))
		}
		page = n
	}

	st, err := s.ucSearch.Search(ctx, &domain.SearchRequest{
		SessionID: sessionID(ctx),
		Query:     q.Get("q"),
		Category:  q.Get("category"),
		Page:      page,
	})
	if err != nil {
		return err
	}
	return ctx.Result(200, st)
}

func (s *DisplayService) Next(ctx http.Context) error {
	st, err := s.ucSearch.Next(ctx, sessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.Result(200, st)
}

func (s *DisplayService) Prev(ctx http.Context) error {
	st, err := s.ucSearch.Prev(ctx, sessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.Result(200, st)
}

func (s *DisplayService) Refresh(ctx http.Context) error {
	st, err := s.ucSearch.Refresh(ctx, sessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.Result(200, st)
}

func (s *DisplayService) State(ctx http.Context) error {
	return ctx.Result(200, s.ucSearch.State(ctx, sessionID(ctx)))
}

func (s *DisplayService) EndSession(ctx http.Context) error {
	id := sessionID(ctx)
	s.ucSearch.EndSession(ctx, id)
	return ctx.Result(200, map[string]string{"session": id})
}

func (s *DisplayService) Suggestions(ctx http.Context) error {
	return ctx.Result(200, &domain.Suggestions{Items: s.ucSearch.Suggestions(ctx, sessionID(ctx))})
}

func (s *DisplayService) Recent(ctx http.Context) error {
	return ctx.Result(200, &domain.Suggestions{Items: s.ucLibrary.Recent(ctx)})
}

func (s *DisplayService) ClearRecent(ctx http.Context) error {
	return ctx.Result(200, s.ucSearch.ClearRecent(ctx, sessionID(ctx)))
}

func (s *DisplayService) ListSaved(ctx http.Context) error {
	return ctx.Result(200, s.ucLibrary.ListSaved(ctx))
}

func (s *DisplayService) Save(ctx http.Context) error {
	var req domain.SaveRequest
	if err := ctx.Bind(&req); err != nil {
		return kerrors.BadRequest("INVALID_BODY", err.Error())
	}
	items, err := s.ucLibrary.Save(ctx, &req)
	if err != nil {
		return err
	}
	return ctx.Result(200, items)
}

// Unsave DELETE /api/saved?link=，不带 link 时清空全部收藏
func (s *DisplayService) Unsave(ctx http.Context) error {
	link := ctx.Query().Get("link")
	if link == "" {
		s.ucLibrary.ClearSaved(ctx)
		return ctx.Result(200, s.ucLibrary.ListSaved(ctx))
	}
	return ctx.Result(200, s.ucLibrary.Unsave(ctx, link))
}

func (s *DisplayService) Preferences(ctx http.Context) error {
	return ctx.Result(200, s.ucLibrary.Preferences(ctx))
}

func (s *DisplayService) UpdatePreferences(ctx http.Context) error {
	var req domain.PreferencesRequest
	if err := ctx.Bind(&req); err != nil {
		return kerrors.BadRequest("INVALID_BODY", err.Error())
	}
	st, err := s.ucSearch.UpdatePreferences(ctx, sessionID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Result(200, st)
}

func (s *DisplayService) ClearCache(ctx http.Context) error {
	return ctx.Result(200, s.ucLibrary.ClearCache(ctx))
}

func (s *DisplayService) Reset(ctx http.Context) error {
	s.ucLibrary.Reset(ctx)
	return ctx.Result(200, s.ucSearch.State(ctx, sessionID(ctx)))
}

func (s *DisplayService) Preview(ctx http.Context) error {
	p, err := s.ucLibrary.Preview(ctx, ctx.Query().Get("link"))
	if err != nil {
		return err
	}
	return ctx.Result(200, p)
}
