package imagesearch

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const (
	name        = "imagesearch"
	defaultHost = "real-time-image-search.p.rapidapi.com"
)

// Client RapidAPI real-time-image-search 客户端
type Client struct {
	apiKey  string
	host    string
	baseURL string
	tr      *search.Transport
}

// NewClient 创建客户端。baseURL 为空时使用 https://<host>/search
func NewClient(apiKey, host, baseURL string, tr *search.Transport) *Client {
	if host == "" {
		host = defaultHost
	}
	if baseURL == "" {
		baseURL = "https://" + host + "/search"
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
func (c *Client) Category() model.Category { return model.CategoryImage }
func (c *Client) Paging() search.Paging    { return search.PagingOffset }

// Search 执行图片搜索，safe_search 取值 on / off
func (c *Client) Search(ctx context.Context, req *search.Request) (search.RawResponse, error) {
	if c.apiKey == "" || c.host == "" {
		return nil, &search.ProviderError{Provider: name, Err: search.ErrMissingCredentials}
	}

	limit := req.Preferences.PageSize
	if limit <= 0 {
		limit = model.DefaultPreferences().PageSize
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	region := req.Preferences.Region
	if region == "" {
		region = model.DefaultPreferences().Region
	}
	safe := "off"
	if req.Preferences.SafeSearch {
		safe = "on"
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &search.ProviderError{Provider: name, Err: err}
	}
	q := u.Query()
	q.Set("query", req.Query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))
	q.Set("safe_search", safe)
	q.Set("region", region)
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("x-rapidapi-host", c.host)
	header.Set("x-rapidapi-key", c.apiKey)

	var body map[string]any
	if err := c.tr.GetJSON(ctx, name, u.String(), header, &body); err != nil {
		return nil, err
	}

	items := search.FirstList(body, "data", "results", "images", "items")
	if items == nil {
		// 部分版本把列表放在 data.images 下
		if data := search.Object(body, "data"); data != nil {
			items = search.FirstList(data, "images", "results", "items")
		}
	}
	return &search.ImageResponse{Items: items}, nil
}
