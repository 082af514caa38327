// Package preview 抓取结果链接并提取可读正文，用于结果详情
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const (
	name = "preview"
	// MaxTextLength 正文截断长度 (按字符)
	MaxTextLength = 5000
	maxBody       = 4 << 20
)

// ErrInvalidURL 预览链接不是 http(s) 绝对地址
var ErrInvalidURL = errors.New("invalid preview url")

// Fetcher 正文抓取器
type Fetcher struct {
	client *http.Client
}

// NewFetcher 创建抓取器，timeout 为 0 时使用 30s
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch 抓取 link 指向的页面并用 readability 提取标题、摘要和正文
func (f *Fetcher) Fetch(ctx context.Context, link string) (*model.Preview, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, link)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; search_hub/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, &search.ProviderError{Provider: name, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &search.ProviderError{Provider: name, StatusCode: res.StatusCode, Err: fmt.Errorf("unexpected status code: %d", res.StatusCode)}
	}

	article, err := readability.FromReader(io.LimitReader(res.Body, maxBody), u)
	if err != nil {
		return nil, fmt.Errorf("parse article failed: %w", err)
	}
	logger.Log.Debugf("预览抓取完成 [%s] 标题: %s 正文长度: %d", u, article.Title, len(article.TextContent))

	return &model.Preview{
		Link:     u.String(),
		Title:    strings.TrimSpace(article.Title),
		Byline:   strings.TrimSpace(article.Byline),
		SiteName: strings.TrimSpace(article.SiteName),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		Image:    article.Image,
		Text:     truncate(strings.TrimSpace(article.TextContent), MaxTextLength),
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
