// Package profile 把同一个本地存储上的各类数据组合在一起，并提供设置页的清理操作
package profile

import (
	"fmt"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/cache"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/config"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/engine"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/history"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/kv"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/prefs"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/saved"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

// Profile 一份本地数据：最近搜索、收藏、偏好、结果缓存
type Profile struct {
	KV      *kv.Store
	History *history.Store
	Saved   *saved.Store
	Prefs   *prefs.Store
	Cache   *cache.Cache
}

// New 在已有存储上创建 Profile
func New(store *kv.Store, defaults model.Preferences) *Profile {
	return &Profile{
		KV:      store,
		History: history.NewStore(store),
		Saved:   saved.NewStore(store),
		Prefs:   prefs.NewStore(store, defaults),
		Cache:   cache.New(store),
	}
}

// Open 按配置打开存储 backend 并创建 Profile
func Open(cfg *config.Config) (*Profile, error) {
	backend, err := kv.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	logger.Log.Infof("本地存储已打开，driver: %s", cfg.Store.Driver)
	return New(kv.New(backend), cfg.Defaults.Preferences()), nil
}

// NewSession 使用本 Profile 的存储创建搜索会话
func (p *Profile) NewSession(providers map[model.Category]search.Provider, cfg *config.Config, onChange func(engine.State)) *engine.Session {
	return engine.NewSession(engine.Deps{
		Providers: providers,
		Cache:     p.Cache,
		History:   p.History,
		Prefs:     p.Prefs,
		TTL:       cfg.Cache.TTL,
		Trending:  cfg.Trending,
		OnChange:  onChange,
	})
}

// ClearHistory 清空最近搜索
func (p *Profile) ClearHistory() {
	p.History.Clear()
}

// ClearCache 清空结果缓存，返回删除的条数
func (p *Profile) ClearCache() int {
	n := p.Cache.ClearAll()
	logger.Log.Infof("已清空结果缓存，共 %d 条", n)
	return n
}

// ClearSaved 清空收藏
func (p *Profile) ClearSaved() {
	p.Saved.Clear()
}

// ResetAll 恢复到首次使用的状态：偏好、缓存、收藏、最近搜索全部清除
func (p *Profile) ResetAll() {
	p.Prefs.Clear()
	p.ClearCache()
	p.ClearSaved()
	p.ClearHistory()
	logger.Log.Info("本地数据已全部重置")
}

// Close 关闭底层存储
func (p *Profile) Close() error {
	return p.KV.Close()
}
