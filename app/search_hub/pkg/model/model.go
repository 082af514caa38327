package model

import (
	"fmt"
	"strings"
	"time"
)

// Category 搜索结果类别，决定使用哪个 provider、归一化分支以及分页计数器
type Category string

const (
	CategoryWeb   Category = "web"
	CategoryImage Category = "image"
	CategoryNews  Category = "news"
)

// Categories 全部类别，顺序即界面 tab 顺序
var Categories = []Category{CategoryWeb, CategoryImage, CategoryNews}

// ParseCategory 解析类别名称，兼容前端旧的 tab 名称 (all / images)
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "web", "all":
		return CategoryWeb, nil
	case "image", "images":
		return CategoryImage, nil
	case "news":
		return CategoryNews, nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// Valid 是否为已知类别
func (c Category) Valid() bool {
	switch c {
	case CategoryWeb, CategoryImage, CategoryNews:
		return true
	}
	return false
}

// Preferences 用户可调的搜索参数
type Preferences struct {
	Region     string `json:"region"`
	SafeSearch bool   `json:"safe"`
	PageSize   int    `json:"perPage"`
}

// DefaultPreferences 默认偏好
func DefaultPreferences() Preferences {
	return Preferences{
		Region:     "in",
		SafeSearch: true,
		PageSize:   10,
	}
}

// Fingerprint 偏好的确定性序列化，用作缓存 key 的一部分
func (p Preferences) Fingerprint() string {
	safe := 0
	if p.SafeSearch {
		safe = 1
	}
	return fmt.Sprintf("region=%s;safe=%d;per=%d", strings.ToLower(p.Region), safe, p.PageSize)
}

// Result 归一化后的单条结果
// Web / News 使用 Snippet，News 额外带 Image / Source / PublishedAt，Image 使用 Thumbnail
type Result struct {
	Type        Category `json:"type"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Snippet     string   `json:"snippet,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Image       string   `json:"image,omitempty"`
	Source      string   `json:"source,omitempty"`
	PublishedAt string   `json:"publishedAt,omitempty"`
}

// KnowledgePanel 网页搜索附带的知识卡片
type KnowledgePanel struct {
	Name        string `json:"name"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Page 一页归一化结果以及元信息，也是缓存的 payload
type Page struct {
	Category        Category        `json:"category"`
	Items           []Result        `json:"items"`
	TotalResults    int64           `json:"totalResults,omitempty"`
	NextCursor      string          `json:"nextCursor,omitempty"`
	RelatedKeywords []string        `json:"relatedKeywords,omitempty"`
	KnowledgePanel  *KnowledgePanel `json:"knowledgePanel,omitempty"`
	TookMs          int64           `json:"tookMs,omitempty"`
}

// Empty 归一化后没有任何条目
func (p *Page) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// SavedItem 收藏的结果，以 Link 去重
type SavedItem struct {
	Title   string    `json:"title"`
	Link    string    `json:"link"`
	Snippet string    `json:"snippet"`
	Type    Category  `json:"type"`
	SavedAt time.Time `json:"savedAt"`
}

// SavedItemFromResult 由搜索结果构造收藏项
func SavedItemFromResult(r Result) SavedItem {
	snippet := r.Snippet
	if snippet == "" {
		snippet = r.Source
	}
	return SavedItem{
		Title:   r.Title,
		Link:    r.Link,
		Snippet: snippet,
		Type:    r.Type,
	}
}

// Preview 结果详情的正文预览
type Preview struct {
	Link     string `json:"link"`
	Title    string `json:"title"`
	Byline   string `json:"byline,omitempty"`
	SiteName string `json:"siteName,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Image    string `json:"image,omitempty"`
	Text     string `json:"text,omitempty"`
}
