package service

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/search_hub/app/display/internal/conf"
	"github.com/iWorld-y/search_hub/app/display/internal/data"
	"github.com/iWorld-y/search_hub/app/display/internal/usecase"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/config"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/kv"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/profile"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

type stubProvider struct {
	calls int
}

func (p *stubProvider) Name() string             { return "stub" }
func (p *stubProvider) Category() model.Category { return model.CategoryWeb }
func (p *stubProvider) Paging() search.Paging    { return search.PagingOffset }

func (p *stubProvider) Search(ctx context.Context, req *search.Request) (search.RawResponse, error) {
	p.calls++
	if req.Query == "broken" {
		return nil, &search.ProviderError{Provider: "stub", StatusCode: 403, APIMessage: "daily limit reached"}
	}
	return &search.WebResponse{Items: []search.RawItem{
		{"title": req.Query, "url": "https://example.com/" + req.Query, "snippet": "s"},
		{"title": "dropped", "url": "#"},
	}}, nil
}

func newTestServer(t *testing.T) (*http.Server, *stubProvider) {
	t.Helper()

	cfg := config.Default()
	prof := profile.New(kv.New(kv.NewMemory()), model.DefaultPreferences())
	web := &stubProvider{}
	d := data.NewDataFrom(cfg, prof, map[model.Category]search.Provider{model.CategoryWeb: web})

	logger := log.DefaultLogger
	sessions := data.NewSessionRepo(d, &conf.Hub{}, logger)
	svc := NewDisplayService(
		usecase.NewSearchUseCase(sessions, logger),
		usecase.NewLibraryUseCase(data.NewLibraryRepo(d, logger), data.NewPreviewRepo(d), sessions, logger),
		logger,
	)
	srv := http.NewServer()
	svc.RegisterHTTP(srv)
	return srv, web
}

func do(t *testing.T, srv *http.Server, method, target, session, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *nethttp.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestSearchRoute(t *testing.T) {
	srv, web := newTestServer(t)

	rec := do(t, srv, nethttp.MethodGet, "/api/search?q=golang", "s1", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(SessionHeader); got != "s1" {
		t.Errorf("Expected session header s1, got %q", got)
	}

	st := decode(t, rec)
	if st["status"] != "success" {
		t.Errorf("Expected success, got %v", st["status"])
	}
	if st["fromCache"] != false {
		t.Errorf("Expected first response not from cache, got %v", st["fromCache"])
	}
	items := st["result"].(map[string]any)["items"].([]any)
	if len(items) != 1 {
		t.Errorf("Expected placeholder link to be dropped, got %d items", len(items))
	}

	// 另一个会话重复同一查询，命中共享缓存
	rec = do(t, srv, nethttp.MethodGet, "/api/search?q=golang", "s2", "")
	if st := decode(t, rec); st["fromCache"] != true {
		t.Errorf("Expected cached response, got %v", st["fromCache"])
	}
	if web.calls != 1 {
		t.Errorf("Expected one provider call, got %d", web.calls)
	}
}

func TestSearchRouteMintsSession(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, nethttp.MethodGet, "/api/state", "", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(SessionHeader) == "" {
		t.Error("Expected a generated session id")
	}
	if st := decode(t, rec); st["status"] != "idle" {
		t.Errorf("Expected idle, got %v", st["status"])
	}
}

func TestSearchRouteErrors(t *testing.T) {
	srv, web := newTestServer(t)

	rec := do(t, srv, nethttp.MethodGet, "/api/search?q=broken", "s1", "")
	if rec.Code != nethttp.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rec.Code)
	}
	if body := decode(t, rec); body["message"] != "daily limit reached" {
		t.Errorf("Expected upstream message, got %v", body["message"])
	}

	rec = do(t, srv, nethttp.MethodGet, "/api/state", "s1", "")
	if st := decode(t, rec); st["status"] != "error" || st["error"] != "daily limit reached" {
		t.Errorf("Expected error state, got %v / %v", st["status"], st["error"])
	}

	rec = do(t, srv, nethttp.MethodGet, "/api/search?q=x&page=zero", "s1", "")
	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("Expected 400 for invalid page, got %d", rec.Code)
	}

	calls := web.calls
	rec = do(t, srv, nethttp.MethodGet, "/api/search?q=x&page=1000000", "s1", "")
	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("Expected 400 for a page beyond the limit, got %d", rec.Code)
	}
	if web.calls != calls {
		t.Errorf("Expected no provider call for a rejected page")
	}

	rec = do(t, srv, nethttp.MethodGet, "/api/search?q=x&category=images", "s1", "")
	if rec.Code != nethttp.StatusServiceUnavailable {
		t.Errorf("Expected 503 without an image provider, got %d", rec.Code)
	}
}

func TestSavedRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, nethttp.MethodPost, "/api/saved", "s1", `{"title":"Go","link":"https://go.dev","snippet":"s","type":"web"}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	do(t, srv, nethttp.MethodPost, "/api/saved", "s1", `{"title":"Go again","link":"https://go.dev"}`)

	var items []model.SavedItem
	rec = do(t, srv, nethttp.MethodGet, "/api/saved", "s1", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("Failed to decode saved items: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Go" {
		t.Errorf("Expected one saved item, got %+v", items)
	}

	rec = do(t, srv, nethttp.MethodDelete, "/api/saved?link=https://go.dev", "s1", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("Failed to decode saved items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no saved items, got %d", len(items))
	}
}

func TestPreferencesRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	do(t, srv, nethttp.MethodGet, "/api/search?q=golang", "s1", "")
	rec := do(t, srv, nethttp.MethodPut, "/api/preferences", "s1", `{"perPage":20}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, srv, nethttp.MethodGet, "/api/preferences", "s1", "")
	if p := decode(t, rec); p["perPage"] != float64(20) || p["region"] != "in" {
		t.Errorf("Unexpected preferences: %v", p)
	}

	rec = do(t, srv, nethttp.MethodPut, "/api/preferences", "s1", `{"region":"usa"}`)
	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("Expected 400 for invalid region, got %d", rec.Code)
	}
}

func TestRecentAndCacheRoutes(t *testing.T) {
	srv, web := newTestServer(t)

	do(t, srv, nethttp.MethodGet, "/api/search?q=golang", "s1", "")
	do(t, srv, nethttp.MethodGet, "/api/search?q=GoLang", "s1", "")

	rec := do(t, srv, nethttp.MethodGet, "/api/recent", "s1", "")
	recent := decode(t, rec)["items"].([]any)
	if len(recent) != 1 || recent[0] != "GoLang" {
		t.Errorf("Expected case-insensitive dedupe, got %v", recent)
	}

	rec = do(t, srv, nethttp.MethodDelete, "/api/cache", "s1", "")
	if body := decode(t, rec); body["removed"] == float64(0) {
		t.Errorf("Expected cached pages to be removed, got %v", body)
	}

	calls := web.calls
	do(t, srv, nethttp.MethodGet, "/api/search?q=golang", "s3", "")
	if web.calls != calls+1 {
		t.Errorf("Expected a provider call after clearing the cache")
	}

	do(t, srv, nethttp.MethodDelete, "/api/recent", "s1", "")
	rec = do(t, srv, nethttp.MethodGet, "/api/recent", "s1", "")
	if items, _ := decode(t, rec)["items"].([]any); len(items) != 0 {
		t.Errorf("Expected recent list cleared, got %v", items)
	}
}

func TestPreviewRouteRejectsInvalidLink(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, nethttp.MethodGet, "/api/preview?link=ftp://example.com", "s1", "")
	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestResetRouteDropsSessionPreferences(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, nethttp.MethodPut, "/api/preferences", "s1", `{"region":"us"}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	do(t, srv, nethttp.MethodPost, "/api/reset", "s1", "")
	rec = do(t, srv, nethttp.MethodGet, "/api/state", "s1", "")
	p := decode(t, rec)["preferences"].(map[string]any)
	if p["region"] != "in" {
		t.Errorf("Expected session preferences reset to defaults, got %v", p)
	}
}
