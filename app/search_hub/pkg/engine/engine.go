// Package engine 搜索编排：按类别选择 provider，先查缓存再请求网络，
// 维护 Idle → Loading → Success | Error 状态机以及每个类别独立的分页位置
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/gg/gslice"
	"github.com/bytedance/gg/gson"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/cache"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/history"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/normalize"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/prefs"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

// Deps 会话依赖，全部由调用方注入
type Deps struct {
	Providers map[model.Category]search.Provider
	Cache     *cache.Cache
	History   *history.Store
	Prefs     *prefs.Store
	// TTL 结果缓存时间，0 时使用 cache.DefaultTTL
	TTL      time.Duration
	Trending []string
	// OnChange 每次状态变化后调用，在锁外执行
	OnChange func(State)
}

// Session 一个用户的搜索会话。
// 状态修改在锁内完成，provider 调用在锁外进行；
// 响应返回时用发起请求时的 (query, category, page, cursor, preferences) 与当前值比较，不一致则丢弃
type Session struct {
	deps Deps
	ttl  time.Duration

	mu          sync.Mutex
	query       string
	category    model.Category
	preferences model.Preferences
	cursors     map[model.Category]*search.Cursor
	status      Status
	result      *model.Page
	errMsg      string
	errKind     search.Kind
	fromCache   bool
	resetScroll bool
}

// NewSession 创建会话，偏好从 Prefs 中读取
func NewSession(deps Deps) *Session {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	s := &Session{
		deps:     deps,
		ttl:      ttl,
		category: model.CategoryWeb,
		cursors:  make(map[model.Category]*search.Cursor, len(model.Categories)),
	}
	for _, c := range model.Categories {
		cur := search.NewCursor()
		s.cursors[c] = &cur
	}
	if deps.Prefs != nil {
		s.preferences = deps.Prefs.Load()
	} else {
		s.preferences = model.DefaultPreferences()
	}
	return s
}

// ticket 一次请求对应的输入
type ticket struct {
	query       string
	category    model.Category
	page        int
	token       string
	fingerprint string
}

func (s *Session) ticketLocked() ticket {
	cur := s.cursors[s.category]
	return ticket{
		query:       s.query,
		category:    s.category,
		page:        cur.Page,
		token:       cur.Token,
		fingerprint: s.preferences.Fingerprint(),
	}
}

// SetQuery 提交新的查询。空查询回到 Idle 且不发请求；
// 否则记录到最近搜索，并把所有类别的页码重置为 1
func (s *Session) SetQuery(ctx context.Context, query string) (State, error) {
	trimmed := strings.TrimSpace(query)

	s.mu.Lock()
	if trimmed == "" {
		s.query = ""
		s.resetAllLocked()
		s.clearResultLocked(StatusIdle)
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(st)
		return st, nil
	}

	if s.deps.History != nil {
		s.deps.History.Record(trimmed)
	}
	s.query = trimmed
	s.resetAllLocked()
	s.mu.Unlock()

	return s.load(ctx, false)
}

// Search 一次提交查询、类别和页码：记录最近搜索，重置所有类别的页码，
// 切到目标类别和页码后只请求一次。游标分页的 provider 需要从第一页逐页前进，
// 最多前进 search.MaxWalk 页
func (s *Session) Search(ctx context.Context, query string, category model.Category, page int) (State, error) {
	if !category.Valid() {
		return s.State(), fmt.Errorf("unknown category: %q", category)
	}
	page = max(page, 1)
	paging := s.pagingFor(category)
	if page > search.MaxPage || (paging == search.PagingToken && page-1 > search.MaxWalk) {
		return s.State(), search.ErrPageOutOfRange
	}
	trimmed := strings.TrimSpace(query)

	s.mu.Lock()
	s.category = category
	s.query = trimmed
	s.resetAllLocked()
	if trimmed == "" {
		s.clearResultLocked(StatusIdle)
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(st)
		return st, nil
	}
	if s.deps.History != nil {
		s.deps.History.Record(trimmed)
	}
	if paging == search.PagingOffset {
		_ = s.cursors[category].Jump(paging, page)
	}
	s.mu.Unlock()

	st, err := s.load(ctx, false)
	for err == nil && paging == search.PagingToken && st.Page < page {
		st, err = s.NextPage(ctx)
	}
	return st, err
}

// SetCategory 切换类别，只重置目标类别的页码
func (s *Session) SetCategory(ctx context.Context, category model.Category) (State, error) {
	if !category.Valid() {
		return s.State(), fmt.Errorf("unknown category: %q", category)
	}

	s.mu.Lock()
	if category != s.category {
		s.category = category
		s.cursors[category].Reset()
	}
	s.mu.Unlock()

	return s.load(ctx, false)
}

// NextPage 当前类别前进一页
func (s *Session) NextPage(ctx context.Context) (State, error) {
	s.mu.Lock()
	if err := s.cursors[s.category].Advance(s.pagingLocked()); err != nil {
		s.mu.Unlock()
		return s.State(), err
	}
	s.mu.Unlock()

	return s.load(ctx, false)
}

// PrevPage 当前类别后退一页，已在第一页时不做任何事
func (s *Session) PrevPage(ctx context.Context) (State, error) {
	s.mu.Lock()
	if !s.cursors[s.category].Back(s.pagingLocked()) {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, nil
	}
	s.mu.Unlock()

	return s.load(ctx, false)
}

// GoToPage 跳到当前类别的指定页，游标分页的 provider 不支持
func (s *Session) GoToPage(ctx context.Context, page int) (State, error) {
	s.mu.Lock()
	if err := s.cursors[s.category].Jump(s.pagingLocked(), page); err != nil {
		s.mu.Unlock()
		return s.State(), err
	}
	s.mu.Unlock()

	return s.load(ctx, false)
}

// Seek 从当前页移动到指定页。页码分页直接跳转；
// 游标分页只能逐页前进或后退，经过的页会写入缓存
func (s *Session) Seek(ctx context.Context, page int) (State, error) {
	page = max(page, 1)
	if page > search.MaxPage {
		return s.State(), search.ErrPageOutOfRange
	}
	st, err := s.GoToPage(ctx, page)
	if !errors.Is(err, search.ErrRandomAccess) {
		return st, err
	}

	st = s.State()
	if d := page - st.Page; d > search.MaxWalk || d < -search.MaxWalk {
		return st, search.ErrPageOutOfRange
	}
	for st.Page != page {
		if st.Page < page {
			st, err = s.NextPage(ctx)
		} else {
			st, err = s.PrevPage(ctx)
		}
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

// UpdatePreferences 合并并持久化偏好。偏好确实变化时重置所有类别的页码并重新加载
func (s *Session) UpdatePreferences(ctx context.Context, patch prefs.Patch) (State, error) {
	if patch.Empty() {
		return s.State(), nil
	}

	s.mu.Lock()
	var (
		merged model.Preferences
		err    error
	)
	if s.deps.Prefs != nil {
		merged, err = s.deps.Prefs.Save(patch)
	} else {
		merged = prefs.Apply(s.preferences, patch)
		err = prefs.Validate(merged)
	}
	if err != nil {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, err
	}
	if merged == s.preferences {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, nil
	}

	s.preferences = merged
	s.resetAllLocked()
	s.mu.Unlock()

	return s.load(ctx, false)
}

// Refresh 跳过缓存重新请求当前页
func (s *Session) Refresh(ctx context.Context) (State, error) {
	return s.load(ctx, true)
}

// State 当前状态快照
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Recent 最近搜索
func (s *Session) Recent() []string {
	if s.deps.History == nil {
		return []string{}
	}
	return s.deps.History.List()
}

// ClearRecent 清空最近搜索
func (s *Session) ClearRecent() {
	if s.deps.History != nil {
		s.deps.History.Clear()
	}
	s.notify(s.State())
}

// load 对当前输入执行 缓存 → provider → 归一化 → 写缓存
func (s *Session) load(ctx context.Context, force bool) (State, error) {
	s.mu.Lock()
	if s.query == "" {
		s.clearResultLocked(StatusIdle)
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(st)
		return st, nil
	}

	t := s.ticketLocked()
	key := cache.MakeKey(t.category, t.query, t.fingerprint, t.page)
	if force {
		s.deps.Cache.Remove(key)
	} else if page, ok := s.deps.Cache.Get(key); ok {
		logger.Log.Debugf("命中缓存 [%s]", key)
		s.commitLocked(page, true)
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(st)
		return st, nil
	}

	provider := s.deps.Providers[t.category]
	req := &search.Request{
		Query:       t.query,
		Page:        t.page,
		Cursor:      t.token,
		Preferences: s.preferences,
	}
	s.clearResultLocked(StatusLoading)
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)

	logger.Log.Infof("开始搜索 [%s] 类别 [%s] 第 %d 页", t.query, t.category, t.page)
	start := time.Now()

	var (
		raw search.RawResponse
		err error
	)
	if provider == nil {
		err = fmt.Errorf("no provider configured for %s: %w", t.category, search.ErrMissingCredentials)
	} else {
		raw, err = provider.Search(ctx, req)
	}

	s.mu.Lock()
	if s.query == "" || s.ticketLocked() != t {
		st := s.snapshotLocked()
		s.mu.Unlock()
		logger.Log.Debugf("丢弃过期响应 [%s] 类别 [%s] 第 %d 页", t.query, t.category, t.page)
		return st, search.ErrSuperseded
	}

	if err != nil {
		s.clearResultLocked(StatusError)
		s.errMsg = search.Message(err)
		s.errKind = search.Classify(err)
		st := s.snapshotLocked()
		s.mu.Unlock()
		logger.Log.Errorf("搜索失败 [%s] 类别 [%s]: %v", t.query, t.category, err)
		s.notify(st)
		return st, err
	}

	page := normalize.Normalize(raw)
	page.TookMs = time.Since(start).Milliseconds()
	if err := s.deps.Cache.Put(key, page, s.ttl); err != nil {
		logger.Log.Warnf("写入缓存失败 [%s] (%s): %v", key, search.Classify(err), err)
	}
	s.commitLocked(page, false)
	st = s.snapshotLocked()
	s.mu.Unlock()

	logger.Log.Infof("搜索完成 [%s] 类别 [%s] 第 %d 页，共 %d 条，耗时 %dms", t.query, t.category, t.page, len(page.Items), page.TookMs)
	logger.Log.Debugf("归一化结果: %s", gson.ToString(page))
	s.notify(st)
	return st, nil
}

func (s *Session) commitLocked(page *model.Page, fromCache bool) {
	s.status = StatusSuccess
	s.result = page
	s.errMsg = ""
	s.errKind = search.KindNone
	s.fromCache = fromCache
	s.resetScroll = true
	if s.pagingLocked() == search.PagingToken {
		s.cursors[s.category].SetNext(page.NextCursor)
	}
}

func (s *Session) clearResultLocked(status Status) {
	s.status = status
	s.result = nil
	s.errMsg = ""
	s.errKind = search.KindNone
	s.fromCache = false
	s.resetScroll = false
}

func (s *Session) resetAllLocked() {
	for _, cur := range s.cursors {
		cur.Reset()
	}
}

func (s *Session) pagingLocked() search.Paging {
	return s.pagingFor(s.category)
}

// pagingFor 类别对应 provider 的分页方式，Providers 创建后不再修改，无需加锁
func (s *Session) pagingFor(category model.Category) search.Paging {
	if p := s.deps.Providers[category]; p != nil {
		return p.Paging()
	}
	return search.PagingOffset
}

func (s *Session) snapshotLocked() State {
	cur := s.cursors[s.category]
	pages := make(map[model.Category]int, len(s.cursors))
	for c, v := range s.cursors {
		pages[c] = v.Page
	}

	st := State{
		Query:       s.query,
		Category:    s.category,
		Page:        cur.Page,
		Pages:       pages,
		Preferences: s.preferences,
		Status:      s.status,
		Result:      copyPage(s.result),
		Error:       s.errMsg,
		FromCache:   s.fromCache,
		Empty:       s.status == StatusSuccess && s.result.Empty(),
		ResetScroll: s.resetScroll,
		HasPrev:     cur.Page > 1,
		Recent:      s.Recent(),
	}
	if s.errKind != search.KindNone {
		st.ErrorKind = s.errKind.String()
	}
	if s.status == StatusSuccess {
		st.HasNext = cur.HasNext(s.pagingLocked()) && !st.Empty
	}
	return st
}

// copyPage 快照中的结果页与会话内部状态互不影响
func copyPage(p *model.Page) *model.Page {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Items = gslice.Clone(p.Items)
	cp.RelatedKeywords = gslice.Clone(p.RelatedKeywords)
	if p.KnowledgePanel != nil {
		kp := *p.KnowledgePanel
		cp.KnowledgePanel = &kp
	}
	return &cp
}

func (s *Session) notify(st State) {
	if s.deps.OnChange != nil {
		s.deps.OnChange(st)
	}
}
