package tavily

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
)

func newServer(t *testing.T, requests *[]SearchRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		var req SearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*requests = append(*requests, req)

		results := make([]map[string]any, 0, req.MaxResults)
		for i := 1; i <= req.MaxResults; i++ {
			results = append(results, map[string]any{
				"title": fmt.Sprintf("r%d", i),
				"url":   fmt.Sprintf("https://example.com/%d", i),
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
}

func TestSearchOffsetEmulation(t *testing.T) {
	var requests []SearchRequest
	srv := newServer(t, &requests)
	defer srv.Close()

	c := NewClient("key", model.CategoryWeb, srv.URL, nil)
	prefs := model.DefaultPreferences()

	raw, err := c.Search(context.Background(), &search.Request{Query: "go", Page: 2, Preferences: prefs})
	require.NoError(t, err)
	web := raw.(*search.WebResponse)
	require.Len(t, web.Items, 10)
	assert.Equal(t, "r11", web.Items[0]["title"])

	require.Len(t, requests, 1)
	assert.Equal(t, 20, requests[0].MaxResults)
	assert.Equal(t, "general", requests[0].Topic)
	assert.Equal(t, "basic", requests[0].SearchDepth)
}

func TestSearchBeyondLimit(t *testing.T) {
	var requests []SearchRequest
	srv := newServer(t, &requests)
	defer srv.Close()

	c := NewClient("key", model.CategoryNews, srv.URL, nil)
	raw, err := c.Search(context.Background(), &search.Request{Query: "go", Page: 3, Preferences: model.DefaultPreferences()})
	require.NoError(t, err)

	news := raw.(*search.NewsResponse)
	assert.Empty(t, news.Items)
	assert.Empty(t, requests)
}

func TestSearchNewsTopic(t *testing.T) {
	var requests []SearchRequest
	srv := newServer(t, &requests)
	defer srv.Close()

	_, err := NewClient("key", model.CategoryNews, srv.URL, nil).Search(context.Background(), &search.Request{Query: "go", Page: 1, Preferences: model.DefaultPreferences()})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "news", requests[0].Topic)
	assert.Equal(t, 10, requests[0].MaxResults)
}

func TestSearchMissingKey(t *testing.T) {
	_, err := NewClient("", model.CategoryWeb, "", nil).Search(context.Background(), &search.Request{Query: "go"})
	assert.ErrorIs(t, err, search.ErrMissingCredentials)
}
