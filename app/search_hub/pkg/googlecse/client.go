package googlecse

import (
	"context"
	"net/url"
	"strconv"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const (
	name           = "googlecse"
	defaultBaseURL = "https://www.googleapis.com/customsearch/v1"
	// maxNum Custom Search 单次最多返回 10 条
	maxNum = 10
)

// Client Google Custom Search JSON API 客户端
type Client struct {
	apiKey  string
	cx      string
	baseURL string
	tr      *search.Transport
}

// NewClient 创建一个新的 Google CSE 客户端，baseURL 为空时使用官方地址
func NewClient(apiKey, cx, baseURL string, tr *search.Transport) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if tr == nil {
		tr = search.NewTransport(0, nil)
	}
	return &Client{
		apiKey:  apiKey,
		cx:      cx,
		baseURL: baseURL,
		tr:      tr,
	}
}

// Ensure Client implements search.Provider
var _ search.Provider = (*Client)(nil)

func (c *Client) Name() string             { return name }
func (c *Client) Category() model.Category { return model.CategoryWeb }
func (c *Client) Paging() search.Paging    { return search.PagingOffset }

// Search 按页码换算 start 参数：第 1 页 start=1，第 2 页 start=num+1
func (c *Client) Search(ctx context.Context, req *search.Request) (search.RawResponse, error) {
	if c.apiKey == "" || c.cx == "" {
		return nil, &search.ProviderError{Provider: name, Err: search.ErrMissingCredentials}
	}

	num := req.Preferences.PageSize
	if num <= 0 || num > maxNum {
		num = maxNum
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &search.ProviderError{Provider: name, Err: err}
	}
	q := u.Query()
	q.Set("q", req.Query)
	q.Set("key", c.apiKey)
	q.Set("cx", c.cx)
	q.Set("start", strconv.Itoa(search.Offset(req.Page, num)))
	q.Set("num", strconv.Itoa(num))
	if req.Preferences.SafeSearch {
		q.Set("safe", "active")
	} else {
		q.Set("safe", "off")
	}
	if req.Preferences.Region != "" {
		q.Set("gl", req.Preferences.Region)
	}
	u.RawQuery = q.Encode()

	var body map[string]any
	if err := c.tr.GetJSON(ctx, name, u.String(), nil, &body); err != nil {
		return nil, err
	}

	resp := &search.WebResponse{
		Items: search.FirstList(body, "items"),
	}
	if info := search.Object(body, "searchInformation"); info != nil {
		resp.TotalResults = search.Int64(info["totalResults"])
	}
	if spelling := search.Object(body, "spelling"); spelling != nil {
		if s := search.String(spelling, "correctedQuery"); s != "" {
			resp.RelatedKeywords = []any{s}
		}
	}
	return resp, nil
}
