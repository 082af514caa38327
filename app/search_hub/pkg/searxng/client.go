package searxng

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const name = "searxng"

// Client SearXNG API 客户端，一个实例只服务一个类别
type Client struct {
	baseURL  string
	category model.Category
	language string
	tr       *search.Transport
}

// NewClient 创建一个新的 SearXNG 客户端
func NewClient(baseURL string, category model.Category, language string, tr *search.Transport) *Client {
	if language == "" {
		language = "auto"
	}
	if tr == nil {
		tr = search.NewTransport(0, nil)
	}
	return &Client{
		baseURL:  baseURL,
		category: category,
		language: language,
		tr:       tr,
	}
}

// Ensure Client implements search.Provider
var _ search.Provider = (*Client)(nil)

func (c *Client) Name() string             { return name }
func (c *Client) Category() model.Category { return c.category }
func (c *Client) Paging() search.Paging    { return search.PagingOffset }

// SearchResponse SearXNG 响应结构，结果条目保持原始 JSON
type SearchResponse struct {
	Query           string           `json:"query"`
	NumberOfResults float64          `json:"number_of_results"`
	Results         []search.RawItem `json:"results"`
	Suggestions     []string         `json:"suggestions"`
}

// categories 类别到 SearXNG categories 参数的映射
var categories = map[model.Category]string{
	model.CategoryWeb:   "general",
	model.CategoryImage: "images",
	model.CategoryNews:  "news",
}

// Search 执行搜索，页码直接映射为 pageno
func (c *Client) Search(ctx context.Context, req *search.Request) (search.RawResponse, error) {
	if c.baseURL == "" {
		return nil, &search.ProviderError{Provider: name, Err: fmt.Errorf("base url: %w", search.ErrMissingCredentials)}
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &search.ProviderError{Provider: name, Err: fmt.Errorf("invalid base URL: %w", err)}
	}
	u.Path = "/search"

	page := req.Page
	if page < 1 {
		page = 1
	}

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("categories", categories[c.category])
	q.Set("pageno", strconv.Itoa(page))
	q.Set("language", c.language)
	// SearXNG safesearch: 0 关闭, 1 适中, 2 严格
	if req.Preferences.SafeSearch {
		q.Set("safesearch", "1")
	} else {
		q.Set("safesearch", "0")
	}
	u.RawQuery = q.Encode()

	var resp SearchResponse
	if err := c.tr.GetJSON(ctx, name, u.String(), nil, &resp); err != nil {
		return nil, err
	}

	switch c.category {
	case model.CategoryImage:
		return &search.ImageResponse{Items: resp.Results}, nil
	case model.CategoryNews:
		return &search.NewsResponse{Items: resp.Results, TotalArticles: int64(resp.NumberOfResults)}, nil
	default:
		related := make([]any, 0, len(resp.Suggestions))
		for _, s := range resp.Suggestions {
			related = append(related, s)
		}
		return &search.WebResponse{
			Items:           resp.Results,
			TotalResults:    int64(resp.NumberOfResults),
			RelatedKeywords: related,
		}, nil
	}
}
