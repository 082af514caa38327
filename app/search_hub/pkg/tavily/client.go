package tavily

import (
	"context"
	"net/http"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const (
	name           = "tavily"
	defaultBaseURL = "https://api.tavily.com/search"
	// maxResults Tavily 单次请求的结果上限
	maxResults = 20
)

// Client Tavily API 客户端。
// Tavily 没有分页参数，按 page*pageSize 请求后截取当前页，超出上限的页为空
type Client struct {
	apiKey   string
	category model.Category
	baseURL  string
	tr       *search.Transport
}

// NewClient 创建一个新的 Tavily 客户端，category 只能是 web 或 news
func NewClient(apiKey string, category model.Category, baseURL string, tr *search.Transport) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if tr == nil {
		tr = search.NewTransport(0, nil)
	}
	return &Client{
		apiKey:   apiKey,
		category: category,
		baseURL:  baseURL,
		tr:       tr,
	}
}

// Ensure Client implements search.Provider
var _ search.Provider = (*Client)(nil)

func (c *Client) Name() string             { return name }
func (c *Client) Category() model.Category { return c.category }
func (c *Client) Paging() search.Paging    { return search.PagingOffset }

// SearchRequest Tavily 搜索请求参数
type SearchRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth,omitempty"` // basic or advanced
	Topic         string `json:"topic,omitempty"`        // general or news
	MaxResults    int    `json:"max_results,omitempty"`
	IncludeImages bool   `json:"include_images,omitempty"`
}

// SearchResponse Tavily 搜索响应
type SearchResponse struct {
	Query        string           `json:"query"`
	Results      []search.RawItem `json:"results"`
	Answer       string           `json:"answer"`
	ResponseTime float64          `json:"response_time"`
}

// Search implements search.Provider
func (c *Client) Search(ctx context.Context, req *search.Request) (search.RawResponse, error) {
	if c.apiKey == "" {
		return nil, &search.ProviderError{Provider: name, Err: search.ErrMissingCredentials}
	}

	size := req.Preferences.PageSize
	if size <= 0 {
		size = model.DefaultPreferences().PageSize
	}
	start := search.Offset(req.Page, size) - 1

	var items []search.RawItem
	if start < maxResults {
		want := start + size
		if want > maxResults {
			want = maxResults
		}
		resp, err := c.doSearch(ctx, SearchRequest{
			Query:      req.Query,
			MaxResults: want,
		})
		if err != nil {
			return nil, err
		}
		if start < len(resp.Results) {
			items = resp.Results[start:]
		}
	}

	if c.category == model.CategoryNews {
		return &search.NewsResponse{Items: items}, nil
	}
	return &search.WebResponse{Items: items}, nil
}

// doSearch 执行搜索 (Internal)
func (c *Client) doSearch(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.SearchDepth == "" {
		req.SearchDepth = "basic"
	}
	if c.category == model.CategoryNews {
		req.Topic = "news"
	} else {
		req.Topic = "general"
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	var resp SearchResponse
	if err := c.tr.PostJSON(ctx, name, c.baseURL, header, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
