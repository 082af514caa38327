// Package history 最近搜索记录：有界、去重、最新在前
package history

import (
	"strings"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/kv"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
)

const (
	// Key 持久化 key
	Key = "search_hub_recent_searches"
	// Limit 最多保留的条数
	Limit = 8
)

// Store 最近搜索记录
type Store struct {
	kv *kv.Store
}

// NewStore 创建最近搜索记录
func NewStore(store *kv.Store) *Store {
	return &Store{kv: store}
}

// Record 记录一次查询：去掉大小写相同的旧记录，插到最前，截断到 Limit 条
func (s *Store) Record(query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return
	}

	existing := s.List()
	updated := make([]string, 0, Limit)
	updated = append(updated, trimmed)
	for _, q := range existing {
		if strings.EqualFold(q, trimmed) {
			continue
		}
		updated = append(updated, q)
	}
	if len(updated) > Limit {
		updated = updated[:Limit]
	}

	if err := s.kv.Set(Key, updated); err != nil {
		logger.Log.Warnf("保存最近搜索失败: %v", err)
	}
}

// List 返回最近搜索，最新在前
func (s *Store) List() []string {
	var list []string
	if !s.kv.Get(Key, &list) {
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}

// Clear 删除全部记录
func (s *Store) Clear() {
	s.kv.Remove(Key)
}
