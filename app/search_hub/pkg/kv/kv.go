// Package kv 本地键值持久化：对 Backend 做 JSON 编解码，并在读到损坏数据时自动清理
package kv

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
)

// ErrClosed backend 已关闭
var ErrClosed = errors.New("kv: backend closed")

// Backend 同步的文本键值存储，对应浏览器的 localStorage
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// Keys 返回以 prefix 开头的全部 key
	Keys(prefix string) ([]string, error)
	Close() error
}

// Store 带 JSON 编解码的持久化适配器
type Store struct {
	backend Backend
}

// New 创建适配器
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get 读取 key 并解码到 out，不存在、读取失败或数据损坏时返回 false。
// 损坏的数据会被顺带删除；返回 false 时 out 的内容不可用
func (s *Store) Get(key string, out any) bool {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		logger.Log.Warnf("读取本地数据失败 [%s]: %v", key, err)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Log.Warnf("丢弃损坏的本地数据 [%s]: %v", key, err)
		s.Remove(key)
		return false
	}
	return true
}

// Set 编码并写入
func (s *Store) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Remove 删除 key，失败只记录日志
func (s *Store) Remove(key string) {
	if err := s.backend.Delete(key); err != nil {
		logger.Log.Warnf("删除本地数据失败 [%s]: %v", key, err)
	}
}

// RemovePrefix 删除所有以 prefix 开头的 key，返回删除数量
func (s *Store) RemovePrefix(prefix string) int {
	keys, err := s.backend.Keys(prefix)
	if err != nil {
		logger.Log.Warnf("列出本地数据失败 [%s*]: %v", prefix, err)
		return 0
	}

	removed := 0
	for _, k := range keys {
		if err := s.backend.Delete(k); err != nil {
			logger.Log.Warnf("删除本地数据失败 [%s]: %v", k, err)
			continue
		}
		removed++
	}
	return removed
}

// Close 关闭底层 backend
func (s *Store) Close() error {
	return s.backend.Close()
}
