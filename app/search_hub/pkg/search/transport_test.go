package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "search_hub/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"items":[{"title":"a"}]}`))
	}))
	defer srv.Close()

	tr := NewTransport(time.Second, nil)
	var out map[string]any
	err := tr.GetJSON(context.Background(), "test", srv.URL, http.Header{"X-Api-Key": {"secret"}}, &out)
	require.NoError(t, err)
	assert.Len(t, FirstList(out, "data", "items"), 1)
}

func TestTransportPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "go", body["query"])
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out map[string]bool
	err := NewTransport(0, nil).PostJSON(context.Background(), "test", srv.URL, nil, map[string]string{"query": "go"}, &out)
	require.NoError(t, err)
	assert.True(t, out["ok"])
}

func TestTransportStatusError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"top-level message", `{"message":"Invalid API key"}`, "Invalid API key"},
		{"google style", `{"error":{"code":403,"message":"Quota exceeded"}}`, "Quota exceeded"},
		{"string error", `{"error":"bad request"}`, "bad request"},
		{"errors list", `{"errors":["You did not provide an API key."]}`, "You did not provide an API key."},
		{"html", `<html>oops</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			var out map[string]any
			err := NewTransport(time.Second, nil).GetJSON(context.Background(), "test", srv.URL, nil, &out)

			var pe *ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, http.StatusForbidden, pe.StatusCode)
			assert.Equal(t, tt.want, pe.APIMessage)
			assert.Equal(t, KindProvider, Classify(err))
		})
	}
}

func TestTransportMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [`))
	}))
	defer srv.Close()

	var out map[string]any
	err := NewTransport(time.Second, nil).GetJSON(context.Background(), "test", srv.URL, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response failed")
}

func TestTransportOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	var out map[string]any
	err := NewTransport(time.Second, nil).GetJSON(context.Background(), "test", url, nil, &out)
	require.Error(t, err)
	assert.Equal(t, KindOffline, Classify(err))
	assert.Equal(t, OfflineMessage, Message(err))
}

func TestNewLimiter(t *testing.T) {
	unlimited := NewLimiter(0, 0)
	assert.True(t, unlimited.Allow())

	l := NewLimiter(60, 2)
	assert.Equal(t, 2, l.Burst())
}

func TestFirstList(t *testing.T) {
	obj := map[string]any{
		"data":    []any{},
		"results": []any{map[string]any{"title": "x"}, "junk"},
	}
	items := FirstList(obj, "data", "results", "items")
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0]["title"])
	assert.Nil(t, FirstList(obj, "missing"))
}
