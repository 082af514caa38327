// Package saved 收藏的搜索结果，以 link 去重
package saved

import (
	"time"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/kv"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

// Key 持久化 key
const Key = "search_hub_saved_v1"

// Store 收藏夹
type Store struct {
	kv  *kv.Store
	now func() time.Time
}

// NewStore 创建收藏夹
func NewStore(store *kv.Store) *Store {
	return &Store{kv: store, now: time.Now}
}

// WithClock 替换时间源
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// List 返回全部收藏，最新在前
func (s *Store) List() []model.SavedItem {
	var items []model.SavedItem
	if !s.kv.Get(Key, &items) || items == nil {
		return []model.SavedItem{}
	}
	return items
}

// Add 收藏一条结果。link 已存在时保持原样返回（保留首次收藏时间）
func (s *Store) Add(item model.SavedItem) []model.SavedItem {
	current := s.List()
	if item.Link == "" || indexOf(current, item.Link) >= 0 {
		return current
	}

	item.SavedAt = s.now()
	updated := append([]model.SavedItem{item}, current...)
	s.write(updated)
	return updated
}

// Remove 取消收藏
func (s *Store) Remove(link string) []model.SavedItem {
	current := s.List()
	updated := make([]model.SavedItem, 0, len(current))
	for _, it := range current {
		if it.Link != link {
			updated = append(updated, it)
		}
	}
	s.write(updated)
	return updated
}

// Contains link 是否已收藏
func (s *Store) Contains(link string) bool {
	return indexOf(s.List(), link) >= 0
}

// Clear 清空收藏
func (s *Store) Clear() {
	s.kv.Remove(Key)
}

func (s *Store) write(items []model.SavedItem) {
	if err := s.kv.Set(Key, items); err != nil {
		logger.Log.Warnf("保存收藏失败: %v", err)
	}
}

func indexOf(items []model.SavedItem, link string) int {
	for i, it := range items {
		if it.Link == link {
			return i
		}
	}
	return -1
}
