// Package cache 按 (类别, 查询, 偏好, 页码) 缓存归一化结果，过期条目在下次读取时惰性删除
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/kv"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const (
	// Prefix 缓存 key 的命名空间
	Prefix = "search_hub_cache_v1"
	// DefaultTTL 搜索结果默认缓存时间
	DefaultTTL = 30 * time.Minute
)

// Entry 持久化形态，Expiry 为毫秒时间戳
type Entry struct {
	Expiry int64       `json:"expiry"`
	Data   *model.Page `json:"data"`
}

// Cache 结果缓存，只做本地读写，不访问网络
type Cache struct {
	kv  *kv.Store
	now func() time.Time
}

// New 创建结果缓存
func New(store *kv.Store) *Cache {
	return &Cache{kv: store, now: time.Now}
}

// WithClock 替换时间源
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// MakeKey 生成确定性的缓存 key，query 先 trim 再转小写
func MakeKey(category model.Category, query, fingerprint string, page int) string {
	q := strings.ToLower(strings.TrimSpace(query))
	return fmt.Sprintf("%s:%s:%s:%s:p%d", Prefix, category, q, fingerprint, page)
}

// Put 写入缓存，过期时间 = now + ttl。写入失败属于可忽略错误
func (c *Cache) Put(key string, page *model.Page, ttl time.Duration) error {
	entry := Entry{
		Expiry: c.now().Add(ttl).UnixMilli(),
		Data:   page,
	}
	if err := c.kv.Set(key, entry); err != nil {
		return search.Ignorable(err)
	}
	return nil
}

// Get 读取缓存。不存在、无法解析或已过期 (now >= expiry) 时返回 false，过期条目会被删除
func (c *Cache) Get(key string) (*model.Page, bool) {
	var entry Entry
	if !c.kv.Get(key, &entry) {
		return nil, false
	}

	if entry.Expiry == 0 || c.now().UnixMilli() >= entry.Expiry || entry.Data == nil {
		c.kv.Remove(key)
		return nil, false
	}
	return entry.Data, true
}

// Remove 删除单个 key
func (c *Cache) Remove(key string) {
	c.kv.Remove(key)
}

// ClearAll 删除命名空间内的全部缓存，其他本地数据不受影响
func (c *Cache) ClearAll() int {
	return c.kv.RemovePrefix(Prefix + ":")
}
