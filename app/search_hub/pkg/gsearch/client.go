package gsearch

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const (
	name        = "gsearch"
	defaultHost = "google-search74.p.rapidapi.com"
)

// Client RapidAPI google-search74 客户端，使用不透明游标分页
type Client struct {
	apiKey  string
	host    string
	baseURL string
	tr      *search.Transport
}

// NewClient 创建客户端。host 为空时使用 google-search74，baseURL 为空时由 host 推导
func NewClient(apiKey, host, baseURL string, tr *search.Transport) *Client {
	if host == "" {
		host = defaultHost
	}
	if baseURL == "" {
		baseURL = "https://" + host + "/"
	}
	if tr == nil {
		tr = search.NewTransport(0, nil)
	}
	return &Client{
		apiKey:  apiKey,
		host:    host,
		baseURL: baseURL,
		tr:      tr,
	}
}

// Ensure Client implements search.Provider
var _ search.Provider = (*Client)(nil)

func (c *Client) Name() string             { return name }
func (c *Client) Category() model.Category { return model.CategoryWeb }
func (c *Client) Paging() search.Paging    { return search.PagingToken }

// Search 第一页不带 cursor，之后使用上一次响应中的 next_cursor
func (c *Client) Search(ctx context.Context, req *search.Request) (search.RawResponse, error) {
	if c.apiKey == "" {
		return nil, &search.ProviderError{Provider: name, Err: search.ErrMissingCredentials}
	}

	limit := req.Preferences.PageSize
	if limit <= 0 {
		limit = model.DefaultPreferences().PageSize
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &search.ProviderError{Provider: name, Err: err}
	}
	q := u.Query()
	q.Set("query", req.Query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("related_keywords", "true")
	if req.Cursor != "" {
		q.Set("cursor", req.Cursor)
	}
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("X-RapidAPI-Key", c.apiKey)
	header.Set("X-RapidAPI-Host", c.host)

	var body map[string]any
	if err := c.tr.GetJSON(ctx, name, u.String(), header, &body); err != nil {
		return nil, err
	}

	resp := &search.WebResponse{
		Items:          search.FirstList(body, "results"),
		TotalResults:   search.Int64(body["total_results"]),
		NextCursor:     search.String(body, "next_cursor"),
		KnowledgePanel: search.Object(body, "knowledge_panel"),
	}
	if related := search.Object(body, "related_keywords"); related != nil {
		resp.RelatedKeywords, _ = related["keywords"].([]any)
	}
	return resp, nil
}
