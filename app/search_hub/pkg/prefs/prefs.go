// Package prefs 用户搜索偏好
package prefs

import (
	"strings"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/kv"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

const (
	// Key 持久化 key
	Key = "search_hub_prefs_v1"

	MinPageSize = 1
	MaxPageSize = 50
)

// Patch 部分更新，nil 字段保持原值
type Patch struct {
	Region     *string `json:"region,omitempty"`
	SafeSearch *bool   `json:"safe,omitempty"`
	PageSize   *int    `json:"perPage,omitempty"`
}

// stored 持久化形态，字段缺失时使用默认值
type stored struct {
	Region  *string `json:"region"`
	Safe    *bool   `json:"safe"`
	PerPage *int    `json:"perPage"`
}

// Store 偏好存储
type Store struct {
	kv       *kv.Store
	defaults model.Preferences
}

// NewStore 创建偏好存储，defaults 非法时使用内置默认值
func NewStore(store *kv.Store, defaults model.Preferences) *Store {
	if Validate(defaults) != nil {
		defaults = model.DefaultPreferences()
	}
	return &Store{kv: store, defaults: defaults}
}

// Defaults 返回默认偏好
func (s *Store) Defaults() model.Preferences {
	return s.defaults
}

// Load 读取偏好；没有持久化或数据不合法时返回默认值
func (s *Store) Load() model.Preferences {
	var raw stored
	if !s.kv.Get(Key, &raw) {
		return s.defaults
	}

	p := s.defaults
	if raw.Region != nil {
		p.Region = *raw.Region
	}
	if raw.Safe != nil {
		p.SafeSearch = *raw.Safe
	}
	if raw.PerPage != nil {
		p.PageSize = *raw.PerPage
	}
	p.Region = strings.ToLower(p.Region)

	if err := Validate(p); err != nil {
		logger.Log.Warnf("本地偏好不合法，使用默认值: %v", err)
		return s.defaults
	}
	return p
}

// Save 将 patch 合并到当前偏好并整体覆盖写入，返回合并后的结果。
// patch 中的非法值会被拒绝
func (s *Store) Save(patch Patch) (model.Preferences, error) {
	merged := Apply(s.Load(), patch)
	if err := Validate(merged); err != nil {
		return s.Load(), err
	}

	if err := s.kv.Set(Key, merged); err != nil {
		logger.Log.Warnf("保存偏好失败: %v", err)
	}
	return merged, nil
}

// Clear 删除持久化的偏好
func (s *Store) Clear() {
	s.kv.Remove(Key)
}

// Apply 合并 patch
func Apply(p model.Preferences, patch Patch) model.Preferences {
	if patch.Region != nil {
		p.Region = strings.ToLower(strings.TrimSpace(*patch.Region))
	}
	if patch.SafeSearch != nil {
		p.SafeSearch = *patch.SafeSearch
	}
	if patch.PageSize != nil {
		p.PageSize = *patch.PageSize
	}
	return p
}

// Empty patch 不包含任何字段
func (p Patch) Empty() bool {
	return p.Region == nil && p.SafeSearch == nil && p.PageSize == nil
}
