package gnews

import (
	"context"
	"net/url"
	"strconv"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

const (
	name            = "gnews"
	defaultBaseURL  = "https://gnews.io/api/v4/search"
	defaultLanguage = "en"
	// maxArticles GNews 单次最多返回 100 条
	maxArticles = 100
)

// Client GNews v4 搜索客户端
type Client struct {
	apiKey   string
	language string
	baseURL  string
	tr       *search.Transport
}

// NewClient 创建客户端，language 为空时使用 en
func NewClient(apiKey, language, baseURL string, tr *search.Transport) *Client {
	if language == "" {
		language = defaultLanguage
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if tr == nil {
		tr = search.NewTransport(0, nil)
	}
	return &Client{
		apiKey:   apiKey,
		language: language,
		baseURL:  baseURL,
		tr:       tr,
	}
}

// Ensure Client implements search.Provider
var _ search.Provider = (*Client)(nil)

func (c *Client) Name() string             { return name }
func (c *Client) Category() model.Category { return model.CategoryNews }
func (c *Client) Paging() search.Paging    { return search.PagingOffset }

// Search 查询新闻，country 取自偏好中的地区
func (c *Client) Search(ctx context.Context, req *search.Request) (search.RawResponse, error) {
	if c.apiKey == "" {
		return nil, &search.ProviderError{Provider: name, Err: search.ErrMissingCredentials}
	}

	limit := req.Preferences.PageSize
	if limit <= 0 {
		limit = model.DefaultPreferences().PageSize
	}
	if limit > maxArticles {
		limit = maxArticles
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	country := req.Preferences.Region
	if country == "" {
		country = model.DefaultPreferences().Region
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &search.ProviderError{Provider: name, Err: err}
	}
	q := u.Query()
	q.Set("q", req.Query)
	q.Set("token", c.apiKey)
	q.Set("lang", c.language)
	q.Set("country", country)
	q.Set("max", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	var body map[string]any
	if err := c.tr.GetJSON(ctx, name, u.String(), nil, &body); err != nil {
		return nil, err
	}

	return &search.NewsResponse{
		Items:         search.FirstList(body, "articles"),
		TotalArticles: search.Int64(body["totalArticles"]),
	}, nil
}
