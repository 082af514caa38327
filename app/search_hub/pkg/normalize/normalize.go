// Package normalize 把各 provider 的原始响应映射为统一的结果结构。
// 每个语义字段对应一张按优先级排列的候选字段表，取第一个非空字符串；
// 字段路径支持点号访问嵌套对象和数组下标，如 source.name、pagemap.cse_thumbnail.0.src。
package normalize

import (
	"strconv"
	"strings"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const (
	NoTitle   = "No title"
	NoSnippet = "No snippet available"

	// Placeholder 上游缺失链接时的占位值，这类条目直接丢弃
	Placeholder = "#"
)

// Fields 单个语义字段的候选路径，按优先级排列
type Fields []string

var (
	webTitle     = Fields{"title", "name"}
	webLink      = Fields{"url", "link"}
	webSnippet   = Fields{"description", "snippet", "content"}
	webThumbnail = Fields{"pagemap.cse_thumbnail.0.src", "thumbnail", "img_src"}

	imageTitle     = Fields{"title", "name"}
	imageLink      = Fields{"source_url", "source", "link", "url"}
	imageThumbnail = Fields{"thumbnail_url", "thumbnail", "thumbnail_src", "image", "img_src", "url"}

	newsTitle     = Fields{"title"}
	newsLink      = Fields{"url", "link"}
	newsSnippet   = Fields{"description", "content", "snippet"}
	newsImage     = Fields{"image", "urlToImage", "img_src", "thumbnail"}
	newsSource    = Fields{"source.name", "source", "engine"}
	newsPublished = Fields{"publishedAt", "published_date", "publishedDate"}
)

// Normalize 根据原始响应的类别分派，nil 返回空页
func Normalize(raw search.RawResponse) *model.Page {
	switch r := raw.(type) {
	case *search.WebResponse:
		return Web(r)
	case *search.ImageResponse:
		return Image(r)
	case *search.NewsResponse:
		return News(r)
	default:
		return &model.Page{Items: []model.Result{}}
	}
}

// Web 归一化网页结果，并带上总数、下一页游标、相关搜索和知识卡片
func Web(r *search.WebResponse) *model.Page {
	page := &model.Page{Category: model.CategoryWeb, Items: []model.Result{}}
	if r == nil {
		return page
	}

	for _, item := range r.Items {
		link := Resolve(item, webLink)
		if dropped(link) {
			continue
		}
		page.Items = append(page.Items, model.Result{
			Type:      model.CategoryWeb,
			Title:     orDefault(Resolve(item, webTitle), NoTitle),
			Link:      link,
			Snippet:   orDefault(Resolve(item, webSnippet), NoSnippet),
			Thumbnail: Resolve(item, webThumbnail),
		})
	}

	page.TotalResults = r.TotalResults
	page.NextCursor = r.NextCursor
	page.RelatedKeywords = Keywords(r.RelatedKeywords)
	page.KnowledgePanel = Panel(r.KnowledgePanel)
	return page
}

// Image 归一化图片结果
func Image(r *search.ImageResponse) *model.Page {
	page := &model.Page{Category: model.CategoryImage, Items: []model.Result{}}
	if r == nil {
		return page
	}

	for _, item := range r.Items {
		link := Resolve(item, imageLink)
		if dropped(link) {
			continue
		}
		page.Items = append(page.Items, model.Result{
			Type:      model.CategoryImage,
			Title:     orDefault(Resolve(item, imageTitle), NoTitle),
			Link:      link,
			Thumbnail: Resolve(item, imageThumbnail),
		})
	}
	return page
}

// News 归一化新闻结果
func News(r *search.NewsResponse) *model.Page {
	page := &model.Page{Category: model.CategoryNews, Items: []model.Result{}}
	if r == nil {
		return page
	}

	for _, item := range r.Items {
		link := Resolve(item, newsLink)
		if dropped(link) {
			continue
		}
		page.Items = append(page.Items, model.Result{
			Type:        model.CategoryNews,
			Title:       orDefault(Resolve(item, newsTitle), NoTitle),
			Link:        link,
			Snippet:     orDefault(Resolve(item, newsSnippet), NoSnippet),
			Image:       Resolve(item, newsImage),
			Source:      Resolve(item, newsSource),
			PublishedAt: Resolve(item, newsPublished),
		})
	}
	page.TotalResults = r.TotalArticles
	return page
}

// Resolve 按顺序取第一个非空白字符串字段
func Resolve(item map[string]any, fields Fields) string {
	for _, path := range fields {
		if s, ok := lookup(item, path).(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func lookup(item map[string]any, path string) any {
	var cur any = item
	for _, seg := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case map[string]any:
			cur = v[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			cur = v[i]
		default:
			return nil
		}
	}
	return cur
}

// Keywords 相关搜索既可能是字符串也可能是 {"keyword": "..."}，其余形状忽略
func Keywords(raw []any) []string {
	var out []string
	for _, k := range raw {
		var s string
		switch v := k.(type) {
		case string:
			s = v
		case map[string]any:
			s, _ = v["keyword"].(string)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Panel 知识卡片，没有名称时视为不存在
func Panel(raw map[string]any) *model.KnowledgePanel {
	if raw == nil {
		return nil
	}
	name := Resolve(raw, Fields{"name", "title"})
	if name == "" {
		return nil
	}
	return &model.KnowledgePanel{
		Name:        name,
		Label:       Resolve(raw, Fields{"label", "type"}),
		Description: Resolve(raw, Fields{"description.text", "description"}),
		ImageURL:    Resolve(raw, Fields{"image.url", "image"}),
	}
}

func dropped(link string) bool {
	return link == "" || link == Placeholder
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
